// Package monitor provides the monitoring service layer.
//
// The Service type wraps the backend API client and adds input validation
// and stale-while-revalidate caching for the read paths the dashboard hits
// on every launch. CLI commands construct a Service from a dialed client
// and call service methods rather than calling the client directly.
package monitor

import (
	"context"
	"strings"

	"modelwatch/internal/domain"
	"modelwatch/internal/swrcache"
	"modelwatch/internal/util"
)

// Backend is the subset of the API client the service layer uses.
type Backend interface {
	ListEndpoints(ctx context.Context) ([]domain.EndpointInfo, error)
	LoadOverview(ctx context.Context, endpointName, modelID string) (*domain.OverviewSnapshot, error)
	LoadSafety(ctx context.Context, modelID string) (*domain.ModelSafety, error)
	LoadHealth(ctx context.Context, modelID string) (*domain.ModelHealth, error)
	CreateEndpoint(ctx context.Context, config domain.EndpointConfig) (string, error)
	DeleteEndpoint(ctx context.Context, endpointName string) (string, error)
	ServerLogs(ctx context.Context) ([]domain.ServerLog, error)
	Evaluate(ctx context.Context, endpointName string, input domain.EvaluationInput) (*domain.EvaluationResult, error)
}

// Service is the monitoring business logic layer. It sits between CLI
// commands and the API client.
type Service struct {
	backend Backend
	name    string
	cache   *swrcache.Cache
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables stale-while-revalidate caching for read operations.
func WithCache(cache *swrcache.Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// New returns a Service for the named backend.
func New(backend Backend, backendName string, opts ...Option) *Service {
	svc := &Service{backend: backend, name: backendName}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ListEndpoints returns every evaluation endpoint on the backend.
func (s *Service) ListEndpoints(ctx context.Context) ([]domain.EndpointInfo, error) {
	if s.cache == nil {
		return s.backend.ListEndpoints(ctx)
	}

	key := cacheKey(s.name, "endpoints")
	return swrcache.GetOrFetch(s.cache, ctx, key, s.backend.ListEndpoints)
}

// Overview returns the performance snapshot for an endpoint, optionally
// narrowed to one model.
func (s *Service) Overview(ctx context.Context, endpointName, modelID string) (*domain.OverviewSnapshot, error) {
	endpointName = strings.TrimSpace(endpointName)
	if err := util.ValidateEndpointName(endpointName); err != nil {
		return nil, err
	}
	if s.cache == nil {
		return s.backend.LoadOverview(ctx, endpointName, modelID)
	}

	key := cacheKey(s.name, "overview", endpointName, modelID)
	return swrcache.GetOrFetch(s.cache, ctx, key, func(ctx context.Context) (*domain.OverviewSnapshot, error) {
		return s.backend.LoadOverview(ctx, endpointName, modelID)
	})
}

// Safety returns the current safety snapshot for a model. Never cached:
// the recency flag is the whole point of the call.
func (s *Service) Safety(ctx context.Context, modelID string) (*domain.ModelSafety, error) {
	return s.backend.LoadSafety(ctx, modelID)
}

// Health returns the current health snapshot for a model. Never cached.
func (s *Service) Health(ctx context.Context, modelID string) (*domain.ModelHealth, error) {
	return s.backend.LoadHealth(ctx, modelID)
}

// CreateEndpoint registers a new evaluation endpoint after validating the
// configuration client-side.
func (s *Service) CreateEndpoint(ctx context.Context, config domain.EndpointConfig) (string, error) {
	config.EndpointName = strings.TrimSpace(config.EndpointName)
	if err := util.ValidateEndpointName(config.EndpointName); err != nil {
		return "", err
	}
	if err := validateConfig(config); err != nil {
		return "", err
	}

	msg, err := s.backend.CreateEndpoint(ctx, config)
	if err == nil && s.cache != nil {
		_ = s.cache.Invalidate(cacheKey(s.name, "endpoints"))
	}
	return msg, err
}

// DeleteEndpoint removes an evaluation endpoint and drops every cached
// snapshot belonging to it.
func (s *Service) DeleteEndpoint(ctx context.Context, endpointName string) (string, error) {
	endpointName = strings.TrimSpace(endpointName)
	if err := util.ValidateEndpointName(endpointName); err != nil {
		return "", err
	}

	msg, err := s.backend.DeleteEndpoint(ctx, endpointName)
	if err == nil && s.cache != nil {
		_ = s.cache.Invalidate(cacheKey(s.name, "endpoints"))
		_ = s.cache.InvalidatePrefix(cacheKey(s.name, "overview", endpointName))
	}
	return msg, err
}

// ServerLogs returns the backend's per-endpoint evaluation bookkeeping.
func (s *Service) ServerLogs(ctx context.Context) ([]domain.ServerLog, error) {
	return s.backend.ServerLogs(ctx)
}

// Evaluate runs one evaluation against an endpoint. The endpoint's cached
// overview snapshots are stale afterwards, so they are dropped.
func (s *Service) Evaluate(ctx context.Context, endpointName string, input domain.EvaluationInput) (*domain.EvaluationResult, error) {
	endpointName = strings.TrimSpace(endpointName)
	if err := util.ValidateEndpointName(endpointName); err != nil {
		return nil, err
	}

	result, err := s.backend.Evaluate(ctx, endpointName, input)
	if err == nil && s.cache != nil {
		_ = s.cache.InvalidatePrefix(cacheKey(s.name, "overview", endpointName))
	}
	return result, err
}

// validateConfig checks the parts of an endpoint configuration the backend
// would reject, so failures surface before the network round trip.
func validateConfig(config domain.EndpointConfig) error {
	if strings.TrimSpace(config.ModelName) == "" {
		return errEmptyModelName
	}
	if len(config.Metrics) == 0 {
		return errNoMetrics
	}
	for _, spec := range config.Metrics {
		if strings.TrimSpace(spec.Name) == "" {
			return errEmptyMetricName
		}
		switch spec.Type {
		case "binary", "multiclass", "multilabel":
		default:
			return &domain.InvalidParameterError{
				Param:  "metric type",
				Reason: "must be binary, multiclass, or multilabel",
			}
		}
	}
	return nil
}

// cacheKey joins non-empty parts into a stable cache key.
func cacheKey(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ":")
}
