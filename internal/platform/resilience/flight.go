package resilience

import (
	"context"
	"fmt"
	"sync"
)

// Flight shares one execution of fn among concurrent callers of the same key.
//
// The shared call runs on a context detached from every caller's cancellation, so a caller
// that gives up only stops waiting for itself. Once the last waiting caller has left, the
// shared call is cancelled and forgotten, and the next caller starts a fresh one.
type Flight[T any] struct {
	mu    sync.Mutex
	calls map[string]*flightCall[T]
}

type flightCall[T any] struct {
	done    chan struct{}
	val     T
	err     error
	waiters int
	cancel  context.CancelFunc
}

// Do runs fn for key unless a call for key is already in flight, in which case it waits
// for that call. shared reports whether the result came from another caller's call.
func (f *Flight[T]) Do(ctx context.Context, key string, fn func(context.Context) (T, error)) (val T, shared bool, err error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]*flightCall[T])
	}
	c, shared := f.calls[key]
	if shared {
		c.waiters++
	} else {
		callCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		c = &flightCall[T]{done: make(chan struct{}), waiters: 1, cancel: cancel}
		f.calls[key] = c
		go f.run(callCtx, key, c, fn)
	}
	f.mu.Unlock()

	select {
	case <-c.done:
		return c.val, shared, c.err
	case <-ctx.Done():
		f.leave(key, c)
		var zero T
		return zero, shared, ctx.Err()
	}
}

func (f *Flight[T]) run(ctx context.Context, key string, c *flightCall[T], fn func(context.Context) (T, error)) {
	defer c.cancel()
	defer func() {
		if rec := recover(); rec != nil {
			c.err = fmt.Errorf("flight %q panicked: %v", key, rec)
		}
		f.forget(key, c)
		close(c.done)
	}()

	c.val, c.err = fn(ctx)
}

func (f *Flight[T]) leave(key string, c *flightCall[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c.waiters--
	if c.waiters > 0 {
		return
	}
	c.cancel()
	if f.calls[key] == c {
		delete(f.calls, key)
	}
}

func (f *Flight[T]) forget(key string, c *flightCall[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.calls[key] == c {
		delete(f.calls, key)
	}
}

// waiting reports how many callers currently wait on key.
func (f *Flight[T]) waiting(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.calls[key]; ok {
		return c.waiters
	}
	return 0
}
