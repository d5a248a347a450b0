package storage

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryBackend keeps tokens in process memory. Entries survive for the life of the
// process, so a browser reload can still hydrate.
type MemoryBackend struct {
	cache *cache.Cache
}

func NewMemoryBackend(defaultTTL, cleanupInterval time.Duration) *MemoryBackend {
	return &MemoryBackend{
		cache: cache.New(defaultTTL, cleanupInterval),
	}
}

func (m *MemoryBackend) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, ok := m.cache.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", ErrNotFound
	}
	return s, nil
}

// Set stores value. A zero ttl uses the backend default.
func (m *MemoryBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	m.cache.Set(key, value, ttl)
	return nil
}

func (m *MemoryBackend) Delete(ctx context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *MemoryBackend) Len() int {
	return m.cache.ItemCount()
}
