package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"modelwatch/internal/domain"
)

// LoginResult is the backend's response to a login attempt. AccessToken is
// empty on deployments that verify credentials without issuing tokens.
type LoginResult struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// Login verifies credentials against the backend. Invalid credentials
// surface as domain.ErrUnauthorized via the fetch error's status mapping.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(username, password)

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

	var result LoginResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &domain.ValidationError{Violation: err.Error()}
	}
	return &result, nil
}
