package cart

import "sync"

// Registry hands out one Store per client. Carts live in memory only.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Store
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Store)}
}

// For returns the cart of client sid, creating an empty one on first use.
func (r *Registry) For(sid string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.carts[sid]
	if !ok {
		s = New()
		r.carts[sid] = s
	}
	return s
}
