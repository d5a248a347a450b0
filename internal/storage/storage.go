// Package storage provides the durable key-value backends that hold session tokens
// outside process memory.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jwalitptl/patio-health/internal/service/session"
	"github.com/jwalitptl/patio-health/pkg/metrics"
)

// ErrNotFound is returned by Get when the key is absent or expired
var ErrNotFound = errors.New("key not found")

// Backend is a string key-value store with expiry
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key returns the namespaced storage key for one browser
func Key(clientID string) string {
	return session.StorageKey + ":" + clientID
}

type keyed struct {
	backend Backend
	key     string
	ttl     time.Duration
}

// Keyed binds a backend to a single client's token key
func Keyed(backend Backend, clientID string, ttl time.Duration) session.TokenStorage {
	return &keyed{backend: backend, key: Key(clientID), ttl: ttl}
}

func (k *keyed) Load(ctx context.Context) (string, error) {
	token, err := k.backend.Get(ctx, k.key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return token, err
}

func (k *keyed) Save(ctx context.Context, token string) error {
	return k.backend.Set(ctx, k.key, token, k.ttl)
}

func (k *keyed) Clear(ctx context.Context) error {
	return k.backend.Delete(ctx, k.key)
}

type instrumented struct {
	next    Backend
	name    string
	metrics *metrics.Metrics
}

// Instrumented counts backend operations under the given backend label
func Instrumented(next Backend, name string, m *metrics.Metrics) Backend {
	if m == nil {
		return next
	}
	return &instrumented{next: next, name: name, metrics: m}
}

func (i *instrumented) Get(ctx context.Context, key string) (string, error) {
	v, err := i.next.Get(ctx, key)
	i.observe("get", err)
	return v, err
}

func (i *instrumented) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	err := i.next.Set(ctx, key, value, ttl)
	i.observe("set", err)
	return err
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	err := i.next.Delete(ctx, key)
	i.observe("delete", err)
	return err
}

func (i *instrumented) observe(op string, err error) {
	status := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		status = "miss"
	case err != nil:
		status = "error"
	}
	i.metrics.StorageOperations.WithLabelValues(i.name, op, status).Inc()
}
