// Package cmdutil wires CLI commands to the configured backend: it loads
// the persisted configuration, reads the keychain, and hands back a ready
// service layer. Test hooks allow swapping the auth store and cache.
package cmdutil

import (
	"errors"
	"fmt"

	"modelwatch/internal/api"
	"modelwatch/internal/config"
	"modelwatch/internal/services/auth"
	"modelwatch/internal/services/monitor"
	"modelwatch/internal/swrcache"
)

var (
	storeOverride auth.Store
	cacheOverride *swrcache.Cache
	noCache       bool
)

// SetStore overrides the auth store. Intended for testing.
func SetStore(s auth.Store) { storeOverride = s }

// ResetStore clears the auth store override. Intended for testing.
func ResetStore() { storeOverride = nil }

// SetCache overrides the snapshot cache. Intended for testing.
func SetCache(c *swrcache.Cache) { cacheOverride = c }

// DisableCache turns caching off entirely. Intended for testing.
func DisableCache() { noCache = true }

// ResetCache clears the cache overrides. Intended for testing.
func ResetCache() { cacheOverride = nil; noCache = false }

// Store returns the auth store commands should use.
func Store() auth.Store {
	if storeOverride != nil {
		return storeOverride
	}
	return auth.DefaultStore()
}

func cache() *swrcache.Cache {
	if noCache {
		return nil
	}
	if cacheOverride != nil {
		return cacheOverride
	}
	return swrcache.NewDefault()
}

// Dial returns an API client for the configured backend.
func Dial() (*api.Client, error) {
	return api.Dial(Store())
}

// Service returns the monitoring service layer for the configured backend,
// along with the backend's API URL for display.
func Service() (*monitor.Service, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.APIURL == "" {
		return nil, "", errors.New("no API URL configured: run 'modelwatch config set api-url <url>'")
	}

	client, err := api.Dial(Store())
	if err != nil {
		return nil, "", err
	}

	opts := []monitor.Option{}
	if c := cache(); c != nil {
		opts = append(opts, monitor.WithCache(c))
	}
	return monitor.New(client, cfg.APIURL, opts...), cfg.APIURL, nil
}

// DefaultEndpoint resolves the endpoint name for a command: an explicit
// argument wins, then the configured default.
func DefaultEndpoint(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DefaultEndpoint == "" {
		return "", errors.New("no endpoint given and no default-endpoint configured")
	}
	return cfg.DefaultEndpoint, nil
}
