package content

import (
	"context"
	"strconv"
	"sync"
	"time"

	"itsolutions/internal/domain"
	"itsolutions/internal/latency"
)

// ProfilePatch is a partial profile update; nil fields are left alone.
// Email and role belong to the identity and cannot be patched.
type ProfilePatch struct {
	Name          *string
	Phone         *string
	Position      *string
	Bio           *string
	Avatar        *string
	Notifications *bool
	Language      *string
	Timezone      *string
}

// ProfileStore holds one profile document per user id.
type ProfileStore struct {
	backend Backend
	fetch   latency.Func
	now     func() time.Time

	mu   sync.Mutex
	docs map[int]*Document[domain.Profile]
	err  string
}

func NewProfileStore(backend Backend, fetch latency.Func) *ProfileStore {
	if fetch == nil {
		fetch = latency.None
	}
	return &ProfileStore{backend: backend, fetch: fetch, now: time.Now, docs: make(map[int]*Document[domain.Profile])}
}

// Fetch returns u's profile, creating it from the identity on first use.
func (s *ProfileStore) Fetch(ctx context.Context, u domain.User) (domain.Profile, error) {
	if err := s.fetch(ctx); err != nil {
		s.setErr("failed to load profile")
		return domain.Profile{}, err
	}
	d, err := s.doc(ctx, u)
	if err != nil {
		s.setErr("failed to load profile")
		return domain.Profile{}, err
	}
	s.setErr("")
	return d.Get(), nil
}

func (s *ProfileStore) Update(ctx context.Context, u domain.User, p ProfilePatch) (domain.Profile, error) {
	d, err := s.doc(ctx, u)
	if err != nil {
		s.setErr("failed to update profile")
		return domain.Profile{}, err
	}
	out, err := d.Update(ctx, func(cur domain.Profile, _ time.Time) (domain.Profile, error) {
		p.apply(&cur)
		return cur, nil
	})
	if err != nil {
		s.setErr("failed to update profile")
		return out, err
	}
	s.setErr("")
	return out, nil
}

func (s *ProfileStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ProfileStore) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *ProfileStore) doc(ctx context.Context, u domain.User) (*Document[domain.Profile], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.docs[u.ID]; ok {
		return d, nil
	}
	now := s.now()
	seed := domain.Profile{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Avatar:        u.Avatar,
		Role:          u.Role,
		CreatedAt:     now,
		LastLogin:     now,
		Notifications: true,
		Language:      "en",
		Timezone:      "UTC",
	}
	d, err := NewDocument(ctx, s.backend, "profile:"+strconv.Itoa(u.ID), "profile", seed, s.fetch)
	if err != nil {
		return nil, err
	}
	s.docs[u.ID] = d
	return d, nil
}

func (p ProfilePatch) apply(dst *domain.Profile) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&dst.Name, p.Name)
	set(&dst.Phone, p.Phone)
	set(&dst.Position, p.Position)
	set(&dst.Bio, p.Bio)
	set(&dst.Avatar, p.Avatar)
	set(&dst.Language, p.Language)
	set(&dst.Timezone, p.Timezone)
	if p.Notifications != nil {
		dst.Notifications = *p.Notifications
	}
}
