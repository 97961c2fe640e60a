package auth

import (
	"errors"

	"modelwatch/internal/util"
)

const ServiceName = "modelwatch"

var ErrTokenNotFound = errors.New("auth token not found")

// Store persists API tokens keyed by the backend they belong to, so one
// installation can stay logged in to several monitoring deployments.
type Store interface {
	SetToken(backend string, token string) error
	GetToken(backend string) (string, error)
	DeleteToken(backend string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeBackend normalizes a backend URL or name for consistent key lookup.
func NormalizeBackend(backend string) string {
	return util.NormalizeKey(backend)
}
