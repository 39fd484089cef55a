// Package cart keeps shopping cart lines and their derived totals.
//
// A Store owns its lines; Total and ItemCount are recomputed from the lines
// after every mutation and are never adjusted incrementally.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"itsolutions/internal/domain"
)

type Store struct {
	mu      sync.RWMutex
	lines   []domain.CartLine
	summary domain.CartSummary
}

func New() *Store {
	return &Store{lines: []domain.CartLine{}, summary: domain.CartSummary{Total: decimal.Zero}}
}

// View is a consistent copy of the cart at one instant.
type View struct {
	Lines []domain.CartLine
	domain.CartSummary
}

func (v View) Empty() bool { return len(v.Lines) == 0 }

// Add appends line, or, when a line with the same ID exists, adds the
// incoming quantity to it. Incoming descriptive fields replace the stored
// ones. Non-positive quantities are ignored.
func (s *Store) Add(line domain.CartLine) domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line.Quantity <= 0 || line.ID == "" {
		return s.summary
	}
	if i := s.indexLocked(line.ID); i >= 0 {
		line.Quantity += s.lines[i].Quantity
		s.lines[i] = line
	} else {
		s.lines = append(s.lines, line)
	}
	return s.recomputeLocked()
}

// Remove deletes the line with id; unknown ids are ignored.
func (s *Store) Remove(id string) domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
	return s.recomputeLocked()
}

// SetQuantity sets the exact quantity of id. q <= 0 removes the line.
func (s *Store) SetQuantity(id string, q int) domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q <= 0 {
		s.removeLocked(id)
	} else if i := s.indexLocked(id); i >= 0 {
		s.lines[i].Quantity = q
	}
	return s.recomputeLocked()
}

func (s *Store) Clear() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = []domain.CartLine{}
	return s.recomputeLocked()
}

func (s *Store) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Summary() domain.CartSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

func (s *Store) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return View{Lines: out, CartSummary: s.summary}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.lines {
		if s.lines[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeLocked(id string) {
	if i := s.indexLocked(id); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

func (s *Store) recomputeLocked() domain.CartSummary {
	s.summary = Summarize(s.lines)
	return s.summary
}

// Summarize derives the cart summary from lines.
func Summarize(lines []domain.CartLine) domain.CartSummary {
	sum := domain.CartSummary{Total: decimal.Zero}
	for _, l := range lines {
		sum.Total = sum.Total.Add(l.Subtotal())
		sum.ItemCount += l.Quantity
	}
	return sum
}
