package api

import (
	"errors"
	"fmt"

	"modelwatch/internal/config"
	"modelwatch/internal/services/auth"
)

// Dial builds a Client from the persisted configuration and the keychain.
// The API URL must have been configured; a missing token is tolerated so
// unauthenticated deployments keep working.
func Dial(store auth.Store) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.APIURL == "" {
		return nil, errors.New("no API URL configured: run 'modelwatch config set api-url <url>'")
	}

	token, err := store.GetToken(cfg.APIURL)
	if err != nil && !errors.Is(err, auth.ErrTokenNotFound) {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	return New(cfg.APIURL, token), nil
}
