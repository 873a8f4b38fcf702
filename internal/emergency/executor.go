package emergency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jask/safechat/internal/logging"
)

// PermissionRequester asks the platform for foreground location access.
type PermissionRequester interface {
	RequestPermission(ctx context.Context) (granted bool, err error)
}

// Locator reads the current device position.
type Locator interface {
	CurrentLocation(ctx context.Context) (Coordinates, error)
}

// Haptics fires an attention cue. Platforms without haptics return
// ErrUnsupported.
type Haptics interface {
	Cue() error
}

// ErrUnsupported is returned by capabilities missing on the platform.
var ErrUnsupported = errors.New("unsupported on this platform")

var errNoCapability = errors.New("capability not configured")

// Job is an asynchronous effect ready to run. It always returns an event.
type Job func(ctx context.Context) Event

// Executor performs effects against device capabilities. Timeout bounds
// each asynchronous call; zero leaves calls unbounded.
type Executor struct {
	Permissions PermissionRequester
	Locator     Locator
	Haptics     Haptics
	Timeout     time.Duration
}

// Cue fires the attention cue. Failures are logged and otherwise ignored.
func (x Executor) Cue() {
	if x.Haptics == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logging.Logf("haptics: recovered panic: %v", r)
		}
	}()
	if err := x.Haptics.Cue(); err != nil && !errors.Is(err, ErrUnsupported) {
		logging.Logf("haptics: %v", err)
	}
}

// Job returns the asynchronous work for eff, or false when eff is not
// asynchronous.
func (x Executor) Job(eff Effect) (Job, bool) {
	switch e := eff.(type) {
	case RequestPermission:
		return func(ctx context.Context) Event {
			granted, err := callBounded(ctx, x.Timeout, func(ctx context.Context) (bool, error) {
				if x.Permissions == nil {
					return false, errNoCapability
				}
				return x.Permissions.RequestPermission(ctx)
			})
			return PermissionResolved{Session: e.Session, Granted: granted, Err: err}
		}, true
	case AcquireLocation:
		return func(ctx context.Context) Event {
			coords, err := callBounded(ctx, x.Timeout, func(ctx context.Context) (Coordinates, error) {
				if x.Locator == nil {
					return Coordinates{}, errNoCapability
				}
				return x.Locator.CurrentLocation(ctx)
			})
			return LocationResolved{Session: e.Session, Coordinates: coords, Err: err}
		}, true
	}
	return nil, false
}

type result[T any] struct {
	val T
	err error
}

// callBounded runs fn, turning panics into errors. With a positive timeout
// the call is abandoned once the deadline passes.
func callBounded[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		r := guarded(ctx, fn)
		return r.val, r.err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan result[T], 1)
	go func() { done <- guarded(ctx, fn) }()
	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("timed out after %s: %w", timeout, ctx.Err())
	}
}

func guarded[T any](ctx context.Context, fn func(context.Context) (T, error)) (r result[T]) {
	defer func() {
		if p := recover(); p != nil {
			r = result[T]{err: fmt.Errorf("platform error: %v", p)}
		}
	}()
	v, err := fn(ctx)
	return result[T]{val: v, err: err}
}
