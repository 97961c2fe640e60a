package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for cross-cutting error classification. The API client
// wraps these so commands can handle error categories uniformly without
// inspecting HTTP status codes.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the request was rejected due to
	// invalid, expired, or missing credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the backend throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrConflict indicates a uniqueness conflict, such as creating an
	// evaluation endpoint whose name is already taken.
	ErrConflict = errors.New("conflict")
)

// FetchError reports a transport or HTTP failure reaching the monitoring
// backend: network down, timeout, or a non-2xx response. Status is zero
// when the request never produced a response.
type FetchError struct {
	Status int
	Reason string
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch failed: HTTP %d: %s", e.Status, e.Reason)
	}
	return "fetch failed: " + e.Reason
}

// Unwrap maps well-known HTTP statuses onto the sentinel errors so that
// errors.Is(err, ErrUnauthorized) and friends work on fetch failures.
func (e *FetchError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusConflict:
		return ErrConflict
	}
	return nil
}

// ValidationError reports a backend response that does not conform to the
// expected snapshot shape. Violation holds the first schema violation
// encountered; the response is discarded, never coerced.
type ValidationError struct {
	Violation string
}

func (e *ValidationError) Error() string {
	return "invalid response: " + e.Violation
}

// InvalidParameterError reports an out-of-range parameter passed to the
// windowing engine. It is a programming-contract violation: callers are
// expected to clamp parameters, not to recover from this at runtime.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}
