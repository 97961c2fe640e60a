package api

import (
	"context"
	"errors"
	"net/url"

	"modelwatch/internal/domain"
)

// ErrEmptyEndpointName is returned when a caller asks for metrics without
// naming an endpoint.
var ErrEmptyEndpointName = errors.New("endpoint name must not be empty")

// LoadOverview fetches the performance snapshot for an evaluation endpoint
// and, optionally, a specific model on it. The returned snapshot satisfies
// every shape invariant or the call fails; a has_data=false snapshot is a
// success, not an error.
func (c *Client) LoadOverview(ctx context.Context, endpointName, modelID string) (*domain.OverviewSnapshot, error) {
	if endpointName == "" {
		return nil, ErrEmptyEndpointName
	}

	path := "/performance_metrics/" + url.PathEscape(endpointName)
	if modelID != "" {
		path += "/" + url.PathEscape(modelID)
	}

	raw, err := c.getRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeOverview(raw)
}

// LoadSafety fetches the safety snapshot for a model.
func (c *Client) LoadSafety(ctx context.Context, modelID string) (*domain.ModelSafety, error) {
	if modelID == "" {
		return nil, errors.New("model id must not be empty")
	}

	raw, err := c.getRaw(ctx, "/model/"+url.PathEscape(modelID)+"/safety")
	if err != nil {
		return nil, err
	}
	return decodeSafety(raw)
}

// LoadHealth fetches the health snapshot for a model.
func (c *Client) LoadHealth(ctx context.Context, modelID string) (*domain.ModelHealth, error) {
	if modelID == "" {
		return nil, errors.New("model id must not be empty")
	}

	var health domain.ModelHealth
	if err := c.getJSON(ctx, "/model/"+url.PathEscape(modelID)+"/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}
