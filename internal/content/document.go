package content

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"itsolutions/internal/latency"
	"itsolutions/internal/telemetry"
)

// Document is one editable value of type T.
type Document[T any] struct {
	name    string
	noun    string
	backend Backend
	save    latency.Func
	now     func() time.Time

	// wmu orders writers; mu guards the fields below.
	wmu     sync.Mutex
	mu      sync.RWMutex
	doc     T
	err     string
	loading bool
}

// NewDocument loads name from backend, falling back to seed.
func NewDocument[T any](ctx context.Context, backend Backend, name, noun string, seed T, save latency.Func) (*Document[T], error) {
	doc, err := load(ctx, backend, name, seed)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if save == nil {
		save = latency.None
	}
	return &Document[T]{name: name, noun: noun, backend: backend, save: save, now: time.Now, doc: doc}, nil
}

func (d *Document[T]) Get() T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return clone(d.doc)
}

// Err is the message of the last failed write, or "" after a success.
func (d *Document[T]) Err() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}

func (d *Document[T]) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

// Update applies fn to a copy of the document and commits the result once
// it is persisted. fn receives the current time for stamping.
func (d *Document[T]) Update(ctx context.Context, fn func(doc T, now time.Time) (T, error)) (T, error) {
	ctx, span := telemetry.Start(ctx, "content", "update", attribute.String("document", d.name))
	defer span.End()

	d.wmu.Lock()
	defer d.wmu.Unlock()
	d.setLoading(true)

	var next T
	err := d.save(ctx)
	if err == nil {
		next, err = fn(d.Get(), d.now())
	}
	if err == nil {
		err = d.backend.Save(ctx, d.name, next)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		d.err = "failed to save " + d.noun
		span.SetStatus(codes.Error, err.Error())
		var zero T
		return zero, err
	}
	d.doc, d.err = next, ""
	return clone(next), nil
}

func (d *Document[T]) setLoading(v bool) {
	d.mu.Lock()
	d.loading = v
	d.mu.Unlock()
}
