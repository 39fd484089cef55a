package content

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"itsolutions/internal/latency"
	"itsolutions/internal/telemetry"
)

// Entity is an item of a Collection. Stamp returns a copy with the
// store-owned fields replaced.
type Entity[T any] interface {
	EntityID() int
	Stamp(id int, createdAt, updatedAt time.Time) T
}

// Timed is implemented by entities whose creation time Update preserves.
type Timed interface {
	Created() time.Time
}

type Latencies struct {
	Save   latency.Func
	Delete latency.Func
}

// Collection is an ordered list of entities with integer ids.
type Collection[T Entity[T]] struct {
	name    string
	noun    string
	backend Backend
	lat     Latencies
	now     func() time.Time

	wmu     sync.Mutex
	mu      sync.RWMutex
	items   []T
	err     string
	loading bool
}

func NewCollection[T Entity[T]](ctx context.Context, backend Backend, name, noun string, seed []T, lat Latencies) (*Collection[T], error) {
	items, err := load(ctx, backend, name, seed)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if lat.Save == nil {
		lat.Save = latency.None
	}
	if lat.Delete == nil {
		lat.Delete = latency.None
	}
	return &Collection[T]{name: name, noun: noun, backend: backend, lat: lat, now: time.Now, items: clone(items)}, nil
}

func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.items)
}

func (c *Collection[T]) Get(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return clone(c.items[i]), true
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Collection[T]) index(id int) int {
	for i, it := range c.items {
		if it.EntityID() == id {
			return i
		}
	}
	return -1
}

// NextID is one past the largest id, or 1 when empty.
func NextID[T Entity[T]](items []T) int {
	max := 0
	for _, it := range items {
		if id := it.EntityID(); id > max {
			max = id
		}
	}
	return max + 1
}

// Create appends item under a fresh id with both timestamps set to now.
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	return c.write(ctx, "create", c.lat.Save, func(items []T, now time.Time) ([]T, T, error) {
		created := clone(item.Stamp(NextID(items), now, now))
		return append(items, created), created, nil
	})
}

// Update replaces the entity with the given id, keeping its id and
// creation time.
func (c *Collection[T]) Update(ctx context.Context, id int, item T) (T, error) {
	return c.write(ctx, "update", c.lat.Save, func(items []T, now time.Time) ([]T, T, error) {
		var zero T
		i := indexOf(items, id)
		if i < 0 {
			return nil, zero, ErrNotFound
		}
		created := now
		if t, ok := any(items[i]).(Timed); ok {
			created = t.Created()
		}
		items[i] = clone(item.Stamp(id, created, now))
		return items, items[i], nil
	})
}

// Delete removes the entity with the given id; an unknown id is a no-op.
func (c *Collection[T]) Delete(ctx context.Context, id int) error {
	_, err := c.write(ctx, "delete", c.lat.Delete, func(items []T, _ time.Time) ([]T, T, error) {
		var zero T
		i := indexOf(items, id)
		if i < 0 {
			return items, zero, nil
		}
		return append(items[:i], items[i+1:]...), zero, nil
	})
	return err
}

func indexOf[T Entity[T]](items []T, id int) int {
	for i, it := range items {
		if it.EntityID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) write(ctx context.Context, op string, wait latency.Func, fn func([]T, time.Time) ([]T, T, error)) (T, error) {
	ctx, span := telemetry.Start(ctx, "content", op, attribute.String("collection", c.name))
	defer span.End()

	c.wmu.Lock()
	defer c.wmu.Unlock()
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	var (
		next   []T
		result T
	)
	err := wait(ctx)
	if err == nil {
		next, result, err = fn(c.List(), c.now())
	}
	if err == nil {
		err = c.backend.Save(ctx, c.name, next)
	}
	return c.commit(span, op, next, result, err)
}

func (c *Collection[T]) commit(span trace.Span, op string, next []T, result T, err error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = fmt.Sprintf("failed to %s %s", op, c.noun)
		span.SetStatus(codes.Error, err.Error())
		var zero T
		return zero, err
	}
	c.items, c.err = next, ""
	return clone(result), nil
}
