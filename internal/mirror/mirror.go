// Package mirror is the durable per-client key/value storage a session
// survives a reload through. It plays the role of browser local storage:
// string keys, string values, one scope per client.
package mirror

import (
	"context"
	"sync"
)

const (
	KeyTheme = "theme"
	KeyUser  = "user"
	KeyToken = "token"
)

// KV is one client's view of the mirror.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Backend stores the keys of every client, partitioned by scope.
type Backend interface {
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
}

type scoped struct {
	b     Backend
	scope string
}

// Scope binds b to one client.
func Scope(b Backend, scope string) KV { return scoped{b: b, scope: scope} }

func (s scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.b.Get(ctx, s.scope, key)
}
func (s scoped) Set(ctx context.Context, key, value string) error {
	return s.b.Set(ctx, s.scope, key, value)
}
func (s scoped) Delete(ctx context.Context, key string) error {
	return s.b.Delete(ctx, s.scope, key)
}

// Memory is a process-local Backend.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]string)}
}

func (m *Memory) Get(_ context.Context, scope, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[scope][key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[scope] == nil {
		m.data[scope] = make(map[string]string)
	}
	m.data[scope][key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[scope], key)
	if len(m.data[scope]) == 0 {
		delete(m.data, scope)
	}
	return nil
}
