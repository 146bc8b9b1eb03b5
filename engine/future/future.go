// Package future provides a write-once result that many goroutines can wait on.
package future

import (
	"context"
	"fmt"
	"sync"
)

// Future is a value that becomes available exactly once.
// The first Resolve wins; later calls are ignored.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// New creates an unresolved Future.
//
// Returns:
//   - *Future[T]: the future
func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved creates a Future that is already resolved with v and err.
func Resolved[T any](v T, err error) *Future[T] {
	f := New[T]()
	f.Resolve(v, err)
	return f
}

// Go runs fn on a new goroutine and resolves the returned Future with its result.
// A panic inside fn resolves the Future with an error instead of crashing the process.
//
// Parameters:
//   - fn: the work to run
//
// Returns:
//   - *Future[T]: the future for fn's result
func Go[T any](fn func() (T, error)) *Future[T] {
	f := New[T]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.Resolve(zero, fmt.Errorf("future: panic: %v", r))
			}
		}()
		v, err := fn()
		f.Resolve(v, err)
	}()
	return f
}

// Resolve sets the result. It reports whether this call resolved the Future.
//
// Parameters:
//   - v: the value
//   - err: the error, or nil
//
// Returns:
//   - bool: true if this call resolved the future
func (f *Future[T]) Resolve(v T, err error) bool {
	resolved := false
	f.once.Do(func() {
		f.value = v
		f.err = err
		resolved = true
		close(f.done)
	})
	return resolved
}

// Done returns a channel that is closed once the Future is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the Future has been resolved.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Await blocks until the Future resolves or ctx is done.
//
// Parameters:
//   - ctx: context bounding the wait
//
// Returns:
//   - T: the value
//   - error: the resolution error, or ctx.Err() if the wait was abandoned
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then calls fn with the result once the Future resolves, on a new goroutine.
func (f *Future[T]) Then(fn func(v T, err error)) {
	go func() {
		<-f.done
		fn(f.value, f.err)
	}()
}
