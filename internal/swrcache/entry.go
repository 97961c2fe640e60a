package swrcache

import "time"

// Entry wraps a cached snapshot with the time it was fetched from the
// backend, which drives the fresh/stale decision.
type Entry[T any] struct {
	Data      T         `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
}
