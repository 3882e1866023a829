package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ridebook/config"
	"ridebook/models"

	"go.uber.org/zap"
)

// Header names required by the dispatch backend.
const (
	HeaderOperatorToken         = "operator_token"
	HeaderSessionID             = "x-jugnoo-session-id"
	HeaderSessionIdentifier     = "x-jugnoo-session-identifier"
	HeaderUserSessionID         = "x-user-session-id"
	HeaderUserSessionIdentifier = "x-user-session-identifier"
)

// Client talks to the upstream dispatch API. All booking, card, OTP, and
// profile traffic goes through it; bodies are form-encoded, replies are JSON
// with a numeric flag.
type Client struct {
	BaseURL       string
	OperatorToken string
	HTTPClient    *http.Client
	Logger        *zap.Logger
}

// NewClient builds a dispatch client from the app config.
func NewClient(logger *zap.Logger) *Client {
	return &Client{
		BaseURL:       config.AppConfig.DispatchBaseURL,
		OperatorToken: config.AppConfig.OperatorToken,
		HTTPClient:    &http.Client{Timeout: 15 * time.Second},
		Logger:        logger,
	}
}

// Envelope is the common response wrapper carrying the status flag.
type Envelope struct {
	Flag    int    `json:"flag"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Text returns the server-supplied message, preferring the error field.
func (e Envelope) Text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// APIError is a non-success reply from the dispatch backend.
type APIError struct {
	Flag       int
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("dispatch request failed (flag %d, status %d)", e.Flag, e.HTTPStatus)
}

// Ping checks reachability of the dispatch backend without authenticating.
// Any HTTP response counts as reachable; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.BaseURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set(HeaderOperatorToken, c.OperatorToken)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (c *Client) postForm(ctx context.Context, path string, session *models.Session, form url.Values, out interface{}) (int, error) {
	endpoint := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("failed to build dispatch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(HeaderOperatorToken, c.OperatorToken)
	if session != nil {
		if session.SessionID != "" {
			req.Header.Set(HeaderSessionID, session.SessionID)
			req.Header.Set(HeaderSessionIdentifier, session.SessionIdentifier)
		}
		if session.UserSessionID != "" {
			req.Header.Set(HeaderUserSessionID, session.UserSessionID)
			req.Header.Set(HeaderUserSessionIdentifier, session.UserSessionIdentifier)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("dispatch request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read dispatch response: %w", err)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to parse dispatch response from %s: %w", path, err)
		}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		c.Logger.Warn("dispatch call returned HTTP error",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
	}
	return resp.StatusCode, nil
}
