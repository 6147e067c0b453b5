package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"passcheq/internal/catalog"
	"passcheq/internal/config"
	"passcheq/internal/password/client"
	"passcheq/internal/password/domain"
	"passcheq/internal/storage"
	"passcheq/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAPI 是远程服务的模拟实现
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Generate(ctx context.Context, cfg domain.GenerationConfig) (*domain.GenerationResult, error) {
	args := m.Called(ctx, cfg)
	res := args.Get(0)
	if res == nil {
		return nil, args.Error(1)
	}
	return res.(*domain.GenerationResult), args.Error(1)
}

func (m *MockAPI) Check(ctx context.Context, password string) (*domain.CheckResult, error) {
	args := m.Called(ctx, password)
	res := args.Get(0)
	if res == nil {
		return nil, args.Error(1)
	}
	return res.(*domain.CheckResult), args.Error(1)
}

type fixture struct {
	svc     PasswordService
	store   *storage.MemoryStore
	history *catalog.Catalog[models.HistoryEntry]
	checks  *catalog.Catalog[models.CheckHistoryEntry]
}

func newFixture(api PasswordAPI) fixture {
	store := storage.NewMemoryStore()
	history := catalog.New[models.HistoryEntry](store, "passwordHistory", catalog.Options{}, nil)
	checks := catalog.New[models.CheckHistoryEntry](store, "passwordChecks", catalog.Options{}, nil)
	return fixture{
		svc:     NewPasswordService(api, history, checks, nil),
		store:   store,
		history: history,
		checks:  checks,
	}
}

func TestGenerate_NoCharsetSkipsNetwork(t *testing.T) {
	api := new(MockAPI)
	f := newFixture(api)

	res, err := f.svc.Generate(context.Background(), domain.GenerationConfig{Length: 12})
	assert.ErrorIs(t, err, domain.ErrNoCharsetSelected)
	assert.Nil(t, res)
	api.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerate_ClampsBeforeSending(t *testing.T) {
	api := new(MockAPI)
	want := domain.GenerationConfig{Length: domain.MaxLength, IncludeUppercase: true}
	api.On("Generate", mock.Anything, want).
		Return(&domain.GenerationResult{Password: "ABCDEFGHIJKLMNOPQRSTUVWXYZABCD", StrengthScore: 3}, nil).Once()

	f := newFixture(api)
	res, err := f.svc.Generate(context.Background(), domain.GenerationConfig{Length: 100, IncludeUppercase: true})
	require.NoError(t, err)
	assert.Equal(t, 3, res.StrengthScore)
	api.AssertExpectations(t)
}

func TestGenerate_DoesNotPersist(t *testing.T) {
	api := new(MockAPI)
	api.On("Generate", mock.Anything, mock.Anything).
		Return(&domain.GenerationResult{Password: "abcd", StrengthScore: 1}, nil)

	f := newFixture(api)
	_, err := f.svc.Generate(context.Background(), domain.DefaultGenerationConfig())
	require.NoError(t, err)
	assert.Empty(t, f.history.Load(context.Background()))
}

func TestGenerate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		apiErr   error
		wantIs   error
		wantAsSv bool
	}{
		{"service error passes through", &domain.ServiceError{Message: "Invalid input parameters"}, nil, true},
		{"transport error passes through", domain.NewTransportError(errors.New("eof")), domain.ErrTransport, false},
		{"unknown error becomes transport", errors.New("boom"), domain.ErrTransport, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAPI)
			api.On("Generate", mock.Anything, mock.Anything).Return(nil, tt.apiErr)

			f := newFixture(api)
			res, err := f.svc.Generate(context.Background(), domain.DefaultGenerationConfig())
			assert.Nil(t, res)
			if tt.wantAsSv {
				var svcErr *domain.ServiceError
				require.True(t, errors.As(err, &svcErr))
				assert.Equal(t, "Invalid input parameters", svcErr.Message)
			} else {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.Empty(t, f.history.Load(context.Background()))
		})
	}
}

func TestRecordHistory(t *testing.T) {
	f := newFixture(new(MockAPI))
	ctx := context.Background()

	e, err := f.svc.RecordHistory(ctx, &domain.GenerationResult{Password: "ab3xk9pq2mzd", StrengthScore: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, e.Strength)
	assert.NotEmpty(t, e.Date)
	assert.NotZero(t, e.ID)
	assert.Equal(t, []models.HistoryEntry{e}, f.history.Load(ctx))

	_, err = f.svc.RecordHistory(ctx, nil)
	assert.Error(t, err)
}

func TestCheck_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		api := new(MockAPI)
		f := newFixture(api)

		res, err := f.svc.Check(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrEmptyInput)
		assert.Nil(t, res)
		api.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
	}
}

func TestCheck_Failure(t *testing.T) {
	api := new(MockAPI)
	api.On("Check", mock.Anything, "hunter2").Return(nil, errors.New("dial tcp: refused"))

	f := newFixture(api)
	res, err := f.svc.Check(context.Background(), "hunter2")
	assert.ErrorIs(t, err, domain.ErrCheckFailed)
	assert.Nil(t, res)
	assert.Empty(t, f.checks.Load(context.Background()))
}

func TestRecordCheck_StoresMaskOnly(t *testing.T) {
	f := newFixture(new(MockAPI))
	ctx := context.Background()

	e, err := f.svc.RecordCheck(ctx, "Sunshine1", &domain.CheckResult{Score: 2})
	require.NoError(t, err)
	assert.Equal(t, "S****1", e.MaskedPassword)
	assert.Equal(t, 2, e.Score)

	raw, err := f.store.Get(ctx, "passwordChecks")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Sunshine1")

	_, err = f.svc.RecordCheck(ctx, "x", nil)
	assert.Error(t, err)
}

// TestGenerateScenario drives the whole generate-then-record flow against
// a fake service over HTTP.
func TestGenerateScenario(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/generate-password", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"password":"ab3xk9pq2mzd","strength_score":4}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	api := client.New(config.ServiceConfig{GenerateURL: srv.URL + "/generate-password"}, srv.Client(), nil)
	f := newFixture(api)
	ctx := context.Background()

	res, err := f.svc.Generate(ctx, domain.GenerationConfig{Length: 12, IncludeLowercase: true, IncludeDigits: true})
	require.NoError(t, err)
	_, err = f.svc.RecordHistory(ctx, res)
	require.NoError(t, err)

	entries := f.history.Load(ctx)
	require.Len(t, entries, 1)
	assert.Equal(t, 4, entries[0].Strength)
	assert.Equal(t, "ab3xk9pq2mzd", entries[0].Password)
	assert.NotEmpty(t, entries[0].Date)
}
