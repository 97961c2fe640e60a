// Package api is the read/write path to the external monitoring backend.
// It owns the only network boundary in the application: every other
// package works on the validated snapshots returned from here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"modelwatch/internal/domain"
	"modelwatch/internal/retry"
)

// defaultTimeout bounds every request; a timeout surfaces as *FetchError.
const defaultTimeout = 15 * time.Second

// Client is a thin HTTP client for the monitoring backend. It uses a
// direct http.Client rather than a generated SDK to keep the dependency
// tree light; the backend is plain REST with JSON bodies.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	retry   retry.Config
}

// New creates a Client for the backend at baseURL. token may be empty for
// deployments that do not require authentication.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: defaultTimeout},
		retry:   retry.DefaultConfig(),
	}
}

// backendError is the FastAPI-style error body: {"detail": "..."}.
type backendError struct {
	Detail string `json:"detail"`
}

// do performs one request and returns the raw response body. Transport
// failures and non-2xx statuses both come back as *domain.FetchError;
// context cancellation is passed through untouched so callers can
// distinguish a superseded fetch from a failed one.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, &domain.FetchError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{Reason: "reading response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.FetchError{
			Status: resp.StatusCode,
			Reason: errorDetail(raw, resp.StatusCode),
		}
	}

	return raw, nil
}

// errorDetail extracts the backend's detail message from an error body,
// falling back to the HTTP status text.
func errorDetail(raw []byte, status int) string {
	var be backendError
	if err := json.Unmarshal(raw, &be); err == nil && be.Detail != "" {
		return be.Detail
	}
	return http.StatusText(status)
}

// getRaw performs a GET with retries. Only reads are retried; they are
// idempotent against the backend.
func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	var raw []byte
	err := retry.Do(ctx, c.retry, shouldRetry, func() error {
		var err error
		raw, err = c.do(ctx, http.MethodGet, path, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// getJSON performs a retried GET and decodes the body into out. A body
// that fails to decode is a *domain.ValidationError, never coerced.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	raw, err := c.getRaw(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.ValidationError{Violation: err.Error()}
	}
	return nil
}

// decodeJSON decodes raw into out, reporting failures as validation
// errors.
func decodeJSON(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.ValidationError{Violation: err.Error()}
	}
	return nil
}

// decodeMessage extracts the confirmation message from a mutation response.
func decodeMessage(raw []byte) (string, error) {
	var out messageEnvelope
	if err := decodeJSON(raw, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// shouldRetry retries transient transport failures plus backend statuses
// that indicate a temporary condition.
func shouldRetry(err error) bool {
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		return fe.Status == 0 || fe.Status >= 500 || fe.Status == http.StatusTooManyRequests
	}
	return retry.IsRetryable(err)
}
