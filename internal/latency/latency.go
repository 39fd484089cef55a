// Package latency simulates the round trip of a backend call. Stores take a
// Func so tests can remove the wait or force a failure.
package latency

import (
	"context"
	"errors"
	"time"
)

// Func waits for one simulated backend call.
type Func func(ctx context.Context) error

// ErrInjected is what Fail returns when no error is supplied.
var ErrInjected = errors.New("simulated backend failure")

// Sleep waits d, returning early with ctx.Err() when ctx is done.
func Sleep(d time.Duration) Func {
	if d <= 0 {
		return None
	}
	return func(ctx context.Context) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Scaled is Sleep(d*scale); scale 0 removes the wait.
func Scaled(d time.Duration, scale float64) Func {
	return Sleep(time.Duration(float64(d) * scale))
}

func None(ctx context.Context) error { return ctx.Err() }

func Fail(err error) Func {
	if err == nil {
		err = ErrInjected
	}
	return func(context.Context) error { return err }
}

// Profile holds the delays the source UI used for its fake backend.
type Profile struct {
	Login  Func
	Save   Func
	Delete Func
	Fetch  Func
}

func NewProfile(scale float64) Profile {
	return Profile{
		Login:  Scaled(time.Second, scale),
		Save:   Scaled(time.Second, scale),
		Delete: Scaled(500*time.Millisecond, scale),
		Fetch:  Scaled(500*time.Millisecond, scale),
	}
}

// Instant is the zero-wait profile used in tests.
func Instant() Profile { return NewProfile(0) }
