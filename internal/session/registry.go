package session

import (
	"context"
	"sync"

	"itsolutions/internal/mirror"
)

// Registry keeps one Store per client id. A Store is restored from the
// mirror the first time its client is seen.
type Registry struct {
	dir     Directory
	backend mirror.Backend
	opts    Options

	mu     sync.Mutex
	stores map[string]*Store
}

func NewRegistry(dir Directory, backend mirror.Backend, opts Options) *Registry {
	return &Registry{dir: dir, backend: backend, opts: opts, stores: make(map[string]*Store)}
}

func (r *Registry) For(ctx context.Context, sid string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[sid]; ok {
		return s, nil
	}
	s := New(r.dir, mirror.Scope(r.backend, sid), r.opts)
	if err := s.Restore(ctx); err != nil {
		return nil, err
	}
	r.stores[sid] = s
	return s, nil
}
