package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"modelwatch/internal/domain"
)

// endpointListEnvelope is the wire shape of GET /evaluation_servers.
type endpointListEnvelope struct {
	Endpoints []domain.EndpointInfo `json:"endpoints"`
}

// messageEnvelope is the wire shape of the backend's mutation responses.
type messageEnvelope struct {
	Message string `json:"message"`
}

// ListEndpoints returns every configured evaluation endpoint.
func (c *Client) ListEndpoints(ctx context.Context) ([]domain.EndpointInfo, error) {
	var out endpointListEnvelope
	if err := c.getJSON(ctx, "/evaluation_servers", &out); err != nil {
		return nil, err
	}
	return out.Endpoints, nil
}

// CreateEndpoint registers a new evaluation endpoint and returns the
// backend's confirmation message. A name collision surfaces as
// domain.ErrConflict via the fetch error's status mapping.
func (c *Client) CreateEndpoint(ctx context.Context, config domain.EndpointConfig) (string, error) {
	if config.EndpointName == "" {
		return "", ErrEmptyEndpointName
	}

	raw, err := c.do(ctx, http.MethodPost, "/create_evaluation_server", config)
	if err != nil {
		return "", err
	}
	return decodeMessage(raw)
}

// DeleteEndpoint removes an evaluation endpoint configuration.
func (c *Client) DeleteEndpoint(ctx context.Context, endpointName string) (string, error) {
	if endpointName == "" {
		return "", ErrEmptyEndpointName
	}

	raw, err := c.do(ctx, http.MethodDelete, "/delete_evaluation_server/"+url.PathEscape(endpointName), nil)
	if err != nil {
		return "", err
	}
	return decodeMessage(raw)
}

// ServerLogs returns the backend's per-endpoint evaluation bookkeeping.
func (c *Client) ServerLogs(ctx context.Context) ([]domain.ServerLog, error) {
	var logs []domain.ServerLog
	if err := c.getJSON(ctx, "/server-logs", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Evaluate runs one evaluation against an endpoint. Metadata columns must
// match the lengths of the prediction/target arrays; the backend rejects
// mismatches.
func (c *Client) Evaluate(ctx context.Context, endpointName string, input domain.EvaluationInput) (*domain.EvaluationResult, error) {
	if endpointName == "" {
		return nil, ErrEmptyEndpointName
	}
	if len(input.PredsProb) == 0 || len(input.Target) == 0 {
		return nil, errors.New("evaluation input must include predictions and targets")
	}

	raw, err := c.do(ctx, http.MethodPost, "/evaluate/"+url.PathEscape(endpointName), input)
	if err != nil {
		return nil, err
	}

	var result domain.EvaluationResult
	if err := decodeJSON(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping verifies the backend is reachable with the current configuration.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListEndpoints(ctx)
	return err
}
