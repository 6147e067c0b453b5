package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"passcheq/internal/config"
	"passcheq/internal/logger"
	"passcheq/internal/password/domain"

	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20 // 1MB

// Client speaks the JSON contract of the remote password service.
type Client struct {
	httpClient  *http.Client
	generateURL string
	checkURL    string
	userAgent   string
	logger      *logger.Logger
}

type generateRequest struct {
	Length              int  `json:"length"`
	IncludeDigits       bool `json:"include_digits"`
	IncludeUppercase    bool `json:"include_uppercase"`
	IncludeLowercase    bool `json:"include_lowercase"`
	IncludeSpecialChars bool `json:"include_special_chars"`
}

// Pointer fields tell a missing key apart from a zero value.
type generateResponse struct {
	Password      *string `json:"password"`
	StrengthScore *int    `json:"strength_score"`
	Error         *string `json:"error"`
}

type checkRequest struct {
	Password string `json:"password"`
}

type checkResponse struct {
	Score           *int            `json:"score"`
	Feedback        domain.Feedback `json:"feedback"`
	TimeToCrack     string          `json:"time_to_crack"`
	HasBeenBreached bool            `json:"has_been_breached"`
}

// New builds a client. A nil httpClient gets a client without a timeout:
// requests run until the service answers or the connection fails.
func New(cfg config.ServiceConfig, httpClient *http.Client, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient:  httpClient,
		generateURL: cfg.GenerateURL,
		checkURL:    cfg.CheckURL,
		userAgent:   cfg.UserAgent,
		logger:      logger.OrNop(log),
	}
}

// Generate posts cfg as-is; validation is the caller's job.
func (c *Client) Generate(ctx context.Context, cfg domain.GenerationConfig) (*domain.GenerationResult, error) {
	payload := generateRequest{
		Length:              cfg.Length,
		IncludeDigits:       cfg.IncludeDigits,
		IncludeUppercase:    cfg.IncludeUppercase,
		IncludeLowercase:    cfg.IncludeLowercase,
		IncludeSpecialChars: cfg.IncludeSpecialChars,
	}

	status, body, err := c.post(ctx, c.generateURL, payload)
	if err != nil {
		return nil, domain.NewTransportError(err)
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("decode response (status %d): %w", status, err))
	}

	if resp.Error != nil && *resp.Error != "" {
		return nil, &domain.ServiceError{Message: *resp.Error}
	}
	if !isSuccess(status) {
		return nil, domain.NewTransportError(fmt.Errorf("unexpected status %d", status))
	}
	if resp.Password == nil || resp.StrengthScore == nil {
		return nil, domain.NewTransportError(fmt.Errorf("response missing password or strength_score"))
	}
	if !domain.ValidScore(*resp.StrengthScore) {
		return nil, domain.NewTransportError(fmt.Errorf("strength_score %d out of range", *resp.StrengthScore))
	}

	return &domain.GenerationResult{
		Password:      *resp.Password,
		StrengthScore: *resp.StrengthScore,
	}, nil
}

// Check sends the raw password for assessment.
func (c *Client) Check(ctx context.Context, password string) (*domain.CheckResult, error) {
	status, body, err := c.post(ctx, c.checkURL, checkRequest{Password: password})
	if err != nil {
		return nil, domain.NewCheckFailed(err)
	}
	if !isSuccess(status) {
		return nil, domain.NewCheckFailed(fmt.Errorf("unexpected status %d", status))
	}

	var resp checkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.NewCheckFailed(fmt.Errorf("decode response: %w", err))
	}
	if resp.Score == nil {
		return nil, domain.NewCheckFailed(fmt.Errorf("response missing score"))
	}
	if !domain.ValidScore(*resp.Score) {
		return nil, domain.NewCheckFailed(fmt.Errorf("score %d out of range", *resp.Score))
	}

	return &domain.CheckResult{
		Score:           *resp.Score,
		Feedback:        resp.Feedback,
		TimeToCrack:     resp.TimeToCrack,
		HasBeenBreached: resp.HasBeenBreached,
	}, nil
}

func (c *Client) post(ctx context.Context, url string, payload any) (int, []byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debugw("sending request", "url", url, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debugw("received response", "url", url, "request_id", requestID, "status", resp.StatusCode)
	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
