package guard

import (
	"sync"

	"itsolutions/internal/session"
)

// Shell watches one client's session across navigations and issues the
// post-login redirect.
type Shell struct {
	mu   sync.Mutex
	last session.State
	seen bool
}

// Navigate records st and returns the redirect target, if any. The first
// observation only primes the shell so a restored session is not bounced.
func (s *Shell) Navigate(st session.State, area Area) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, seen := s.last, s.seen
	s.last, s.seen = st, true
	if !seen {
		return "", false
	}
	return RedirectOnAuth(prev, st, area)
}

type Shells struct {
	mu     sync.Mutex
	shells map[string]*Shell
}

func NewShells() *Shells {
	return &Shells{shells: make(map[string]*Shell)}
}

func (s *Shells) For(sid string) *Shell {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shells[sid]
	if !ok {
		sh = &Shell{}
		s.shells[sid] = sh
	}
	return sh
}
