package content

import (
	"context"
	"time"

	"itsolutions/internal/domain"
)

type HomeStore struct {
	*Document[domain.HomeContent]
}

// Save replaces the home page content, keeping its id and creation time.
func (s HomeStore) Save(ctx context.Context, in domain.HomeContent) (domain.HomeContent, error) {
	return s.Update(ctx, func(cur domain.HomeContent, now time.Time) (domain.HomeContent, error) {
		in.ID, in.CreatedAt, in.UpdatedAt = cur.ID, cur.CreatedAt, now
		return in, nil
	})
}

type ContactStore struct {
	*Document[domain.ContactInfo]
}

func (s ContactStore) Save(ctx context.Context, in domain.ContactInfo) (domain.ContactInfo, error) {
	return s.Update(ctx, func(cur domain.ContactInfo, now time.Time) (domain.ContactInfo, error) {
		in.ID, in.LastUpdated = cur.ID, now
		return in, nil
	})
}

// AboutStore edits the about page as a whole or one stat, team member or
// achievement at a time. New sub-items get max+1 ids within their list.
type AboutStore struct {
	*Document[domain.AboutContent]
}

// Save replaces the text fields; the three lists are edited separately.
func (s AboutStore) Save(ctx context.Context, in domain.AboutContent) (domain.AboutContent, error) {
	return s.Update(ctx, func(cur domain.AboutContent, now time.Time) (domain.AboutContent, error) {
		in.ID, in.CreatedAt, in.UpdatedAt = cur.ID, cur.CreatedAt, now
		in.Stats, in.TeamMembers, in.Achievements = cur.Stats, cur.TeamMembers, cur.Achievements
		return in, nil
	})
}

func (s AboutStore) AddStat(ctx context.Context, st domain.CompanyStat) (domain.AboutContent, error) {
	return s.edit(ctx, func(a *domain.AboutContent) error {
		a.Stats = addItem(a.Stats, st)
		return nil
	})
}

func (s AboutStore) UpdateStat(ctx context.Context, st domain.CompanyStat) (domain.AboutContent, error) {
	return s.edit(ctx, func(a *domain.AboutContent) (err error) {
		a.Stats, err = replaceItem(a.Stats, st)
		return err
	})
}

func (s AboutStore) DeleteStat(ctx context.Context, id int) (domain.AboutContent, error) {
	return s.edit(ctx, func(a *domain.AboutContent) error {
		a.Stats = removeItem(a.Stats, id)
		return nil
	})
}

func (s AboutStore) AddTeamMember(ctx context.Context, m domain.TeamMember) (domain.AboutContent, error) {
	return s.edit(ctx, func(a *domain.AboutContent) error {
		a.TeamMembers = addItem(a.TeamMembers, m)
		return nil
	})
}

func (s AboutStore) UpdateTeamMember(ctx context.Context, m domain.TeamMember) (domain.AboutContent, error) {
	return s.edit(ctx, func(a *domain.AboutContent) (err error) {
		a.TeamMembers, err = replaceItem(a.TeamMembers, m)
		return err
	})
}

func (s AboutStore) DeleteTeamMember(ctx context.Context, id int) (domain.AboutContent, error) {
	return s.edit(ctx, func(a *domain.AboutContent) error {
		a.TeamMembers = removeItem(a.TeamMembers, id)
		return nil
	})
}

func (s AboutStore) AddAchievement(ctx context.Context, ach domain.Achievement) (domain.AboutContent, error) {
	return s.edit(ctx, func(a *domain.AboutContent) error {
		a.Achievements = addItem(a.Achievements, ach)
		return nil
	})
}

func (s AboutStore) UpdateAchievement(ctx context.Context, ach domain.Achievement) (domain.AboutContent, error) {
	return s.edit(ctx, func(a *domain.AboutContent) (err error) {
		a.Achievements, err = replaceItem(a.Achievements, ach)
		return err
	})
}

func (s AboutStore) DeleteAchievement(ctx context.Context, id int) (domain.AboutContent, error) {
	return s.edit(ctx, func(a *domain.AboutContent) error {
		a.Achievements = removeItem(a.Achievements, id)
		return nil
	})
}

func (s AboutStore) edit(ctx context.Context, fn func(*domain.AboutContent) error) (domain.AboutContent, error) {
	return s.Update(ctx, func(cur domain.AboutContent, now time.Time) (domain.AboutContent, error) {
		if err := fn(&cur); err != nil {
			return cur, err
		}
		cur.UpdatedAt = now
		return cur, nil
	})
}

type subItem[T any] interface {
	EntityID() int
	WithID(int) T
}

func addItem[T subItem[T]](items []T, it T) []T {
	next := 1
	for _, x := range items {
		if x.EntityID() >= next {
			next = x.EntityID() + 1
		}
	}
	return append(items, it.WithID(next))
}

func replaceItem[T subItem[T]](items []T, it T) ([]T, error) {
	for i, x := range items {
		if x.EntityID() == it.EntityID() {
			items[i] = it
			return items, nil
		}
	}
	return items, ErrNotFound
}

func removeItem[T subItem[T]](items []T, id int) []T {
	out := items[:0]
	for _, x := range items {
		if x.EntityID() != id {
			out = append(out, x)
		}
	}
	return out
}
