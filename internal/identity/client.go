// Package identity resolves bearer tokens to user identities by calling
// the auth service's /me endpoint.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mealtrack/backend-go/internal/config"
)

// Verifier resolves a bearer token to a user ID.
type Verifier interface {
	Verify(ctx context.Context, token string) (uint, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewClient creates an auth-service client. The request timeout and retry
// budget are bounded so a stalled auth service fails the caller's request
// instead of holding it open indefinitely.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.AuthServiceURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.VerifyTimeoutSeconds) * time.Second,
		},
		maxRetries: int(cfg.VerifyMaxRetries),
		retryDelay: 500 * time.Millisecond,
		logger:     logger,
	}
}

type meResponse struct {
	ID uint `json:"id"`
}

// Verify calls GET {auth}/me with the caller's token. A definite rejection
// (any 4xx) is final; transport errors and 5xx responses are retried within
// the budget, then reported as ErrUnavailable.
func (c *Client) Verify(ctx context.Context, token string) (uint, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("⏳ [Identity] Retrying token verification",
				"attempt", attempt+1,
				"max_attempts", c.maxRetries+1,
				"error", lastErr,
			)
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		}

		userID, retryable, err := c.verifyOnce(ctx, token)
		if err == nil {
			return userID, nil
		}
		if !retryable {
			return 0, err
		}
		lastErr = err
	}

	c.logger.Error("❌ [Identity] Auth service unreachable", "error", lastErr)
	return 0, ErrUnavailable
}

func (c *Client) verifyOnce(ctx context.Context, token string) (uint, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me", nil)
	if err != nil {
		return 0, false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var me meResponse
		if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
			return 0, false, fmt.Errorf("decoding auth service response: %w", err)
		}
		if me.ID == 0 {
			return 0, false, ErrUnauthorized
		}
		return me.ID, false, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return 0, true, fmt.Errorf("auth service returned %d", resp.StatusCode)
	default:
		// Any definite 4xx means the token did not resolve to an identity
		return 0, false, ErrUnauthorized
	}
}

// Client errors
var (
	ErrUnauthorized = errors.New("invalid or expired token")
	ErrUnavailable  = errors.New("auth service unavailable")
)
