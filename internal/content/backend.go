// Package content holds the admin-editable site content: single documents
// (home, about, contact, profiles) and id-keyed collections (services,
// products). Every write waits out a simulated backend call, persists
// through a Backend, then commits; a failure leaves the data as it was and
// records an error string on the store.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("content: not found")

// Backend persists named JSON-encodable values.
type Backend interface {
	// Load decodes the value stored under name into v. It reports false
	// when nothing is stored.
	Load(ctx context.Context, name string, v any) (bool, error)
	Save(ctx context.Context, name string, v any) error
}

// MemoryBackend keeps encoded values for the life of the process.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (m *MemoryBackend) Load(ctx context.Context, name string, v any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	b, ok := m.docs[name]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, v)
}

func (m *MemoryBackend) Save(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = b
	return nil
}

// clone deep-copies v through its JSON form so callers can never reach
// into a store's slices or maps.
func clone[T any](v T) T {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

func load[T any](ctx context.Context, b Backend, name string, seed T) (T, error) {
	var v T
	ok, err := b.Load(ctx, name, &v)
	if err != nil {
		return seed, err
	}
	if !ok {
		return seed, nil
	}
	return v, nil
}
