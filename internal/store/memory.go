package store

import (
	"context"
	"maps"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/i474232898/weather-by-address/internal/weather/providers"
)

// MemoryStore is a concurrency-safe in-process payload cache. Entries expire
// after the ttl given to Write.
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore creates a MemoryStore that sweeps expired entries every
// cleanupInterval. A non-positive interval disables the sweep; expired
// entries are still never returned.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		items: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Read returns a shallow copy of the payload stored under key, if any and
// not expired.
func (s *MemoryStore) Read(_ context.Context, key string) (providers.Payload, bool, error) {
	v, ok := s.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	payload, ok := v.(providers.Payload)
	if !ok {
		return nil, false, nil
	}
	return maps.Clone(payload), true, nil
}

// Write stores payload under key for ttl. A non-positive ttl keeps the entry
// until it is overwritten.
func (s *MemoryStore) Write(_ context.Context, key string, payload providers.Payload, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	s.items.Set(key, payload, ttl)
	return nil
}

// Len returns the number of entries, including expired ones not yet swept.
func (s *MemoryStore) Len() int {
	return s.items.ItemCount()
}
