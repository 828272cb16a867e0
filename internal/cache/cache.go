// Package cache provides a time-bounded cache fronting one external
// source. Each Source instance is owned by the aggregation orchestrator
// and constructed with an explicit TTL; there is no package-level state.
package cache

import (
	"context"
	"sync"
	"time"
)

// Status reports how a GetOrFetch call was satisfied.
type Status string

const (
	// StatusHit means the cached payload was still fresh; no fetch ran.
	StatusHit Status = "hit"
	// StatusFetched means a fetch ran and its result was stored.
	StatusFetched Status = "fetched"
	// StatusStale means the fetch failed and the previous payload was
	// served instead (availability over freshness).
	StatusStale Status = "stale"
	// StatusError means the fetch failed and no previous payload exists.
	StatusError Status = "error"
)

// Source caches the payload of a single external source for a fixed TTL.
//
// Policy decisions, applied consistently:
//   - On refetch failure a stale payload is served rather than an error;
//     the error surfaces only when the cache is empty. A failed fetch
//     never replaces or poisons the stored payload.
//   - Concurrent misses are not deduplicated: each caller fetches and the
//     last completed fetch wins. The mutex guards only the
//     (payload, capturedAt) pair, never a network call.
//
// Safe for concurrent use.
type Source[T any] struct {
	mu         sync.Mutex
	ttl        time.Duration
	payload    T
	capturedAt time.Time
	has        bool

	now func() time.Time // test hook
}

// New creates a Source with the given TTL. A non-positive TTL makes
// every call a miss.
func New[T any](ttl time.Duration) *Source[T] {
	return &Source[T]{ttl: ttl, now: time.Now}
}

// GetOrFetch returns the cached payload when fresh, otherwise invokes
// fetch and stores its result. See the Source doc for the failure and
// concurrency policies.
func (s *Source[T]) GetOrFetch(ctx context.Context, fetch func(context.Context) (T, error)) (T, Status, error) {
	s.mu.Lock()
	if s.has && s.now().Sub(s.capturedAt) < s.ttl {
		payload := s.payload
		s.mu.Unlock()
		return payload, StatusHit, nil
	}
	s.mu.Unlock()

	fresh, err := fetch(ctx)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.has {
			return s.payload, StatusStale, nil
		}
		var zero T
		return zero, StatusError, err
	}

	s.mu.Lock()
	s.payload = fresh
	s.capturedAt = s.now()
	s.has = true
	s.mu.Unlock()
	return fresh, StatusFetched, nil
}

// Reset discards any cached payload, forcing the next call to fetch.
func (s *Source[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.payload = zero
	s.capturedAt = time.Time{}
	s.has = false
}
