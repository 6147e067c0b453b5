package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"passcheq/internal/catalog"
	"passcheq/internal/logger"
	"passcheq/internal/password/domain"
	"passcheq/models"
)

// PasswordAPI is the remote service contract; client.Client implements it.
type PasswordAPI interface {
	Generate(ctx context.Context, cfg domain.GenerationConfig) (*domain.GenerationResult, error)
	Check(ctx context.Context, password string) (*domain.CheckResult, error)
}

// PasswordService 定义了生成与检测两条流程
//
// Generate and Check only talk to the remote service. Persisting a result
// is a separate, explicit step (RecordHistory / RecordCheck) left to the
// caller, so each half can be exercised on its own.
type PasswordService interface {
	Generate(ctx context.Context, cfg domain.GenerationConfig) (*domain.GenerationResult, error)
	RecordHistory(ctx context.Context, res *domain.GenerationResult) (models.HistoryEntry, error)
	Check(ctx context.Context, password string) (*domain.CheckResult, error)
	RecordCheck(ctx context.Context, password string, res *domain.CheckResult) (models.CheckHistoryEntry, error)
}

type passwordService struct {
	api     PasswordAPI
	history *catalog.Catalog[models.HistoryEntry]
	checks  *catalog.Catalog[models.CheckHistoryEntry]
	logger  *logger.Logger
}

func NewPasswordService(
	api PasswordAPI,
	history *catalog.Catalog[models.HistoryEntry],
	checks *catalog.Catalog[models.CheckHistoryEntry],
	log *logger.Logger,
) PasswordService {
	return &passwordService{
		api:     api,
		history: history,
		checks:  checks,
		logger:  logger.OrNop(log),
	}
}

// Generate validates cfg, clamps its length and issues exactly one request.
// Errors are ErrNoCharsetSelected, *ServiceError or ErrTransport.
func (s *passwordService) Generate(ctx context.Context, cfg domain.GenerationConfig) (*domain.GenerationResult, error) {
	valid, err := domain.Validate(cfg)
	if err != nil {
		return nil, err
	}
	if valid.Length != cfg.Length {
		s.logger.Debugf("password length %d clamped to %d", cfg.Length, valid.Length)
	}

	res, err := s.api.Generate(ctx, valid)
	if err != nil {
		var svcErr *domain.ServiceError
		switch {
		case errors.As(err, &svcErr):
			s.logger.Warnw("password service rejected generation", "message", svcErr.Message)
			return nil, err
		case errors.Is(err, domain.ErrTransport):
			s.logger.Errorw("generation request failed", "error", err)
			return nil, err
		default:
			s.logger.Errorw("generation request failed", "error", err)
			return nil, domain.NewTransportError(err)
		}
	}

	s.logger.Infow("password generated", "length", valid.Length, "strength", res.StrengthScore)
	return res, nil
}

// RecordHistory appends a generation result to the generation history.
func (s *passwordService) RecordHistory(ctx context.Context, res *domain.GenerationResult) (models.HistoryEntry, error) {
	if res == nil {
		return models.HistoryEntry{}, fmt.Errorf("no generation result to record")
	}
	return s.history.Append(ctx, models.HistoryEntry{
		Password: res.Password,
		Strength: res.StrengthScore,
	})
}

// Check rejects blank input locally, otherwise sends one request.
// Every remote failure is reported as ErrCheckFailed.
func (s *passwordService) Check(ctx context.Context, password string) (*domain.CheckResult, error) {
	if strings.TrimSpace(password) == "" {
		return nil, domain.ErrEmptyInput
	}

	res, err := s.api.Check(ctx, password)
	if err != nil {
		s.logger.Errorw("password check failed", "error", err)
		if errors.Is(err, domain.ErrCheckFailed) {
			return nil, err
		}
		return nil, domain.NewCheckFailed(err)
	}

	s.logger.Infow("password checked", "score", res.Score, "breached", res.HasBeenBreached)
	return res, nil
}

// RecordCheck appends the masked password and score to the check history.
// The plaintext never reaches the store.
func (s *passwordService) RecordCheck(ctx context.Context, password string, res *domain.CheckResult) (models.CheckHistoryEntry, error) {
	if res == nil {
		return models.CheckHistoryEntry{}, fmt.Errorf("no check result to record")
	}
	return s.checks.Append(ctx, models.CheckHistoryEntry{
		MaskedPassword: domain.Mask(password),
		Score:          res.Score,
	})
}
