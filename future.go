package balala

import (
	"context"
	"sync"
)

// Future is the pending result of an asynchronous operation. It is
// completed exactly once; later Complete or Fail calls are ignored.
type Future[T any] struct {
	done      chan struct{}
	once      sync.Once
	mu        sync.Mutex
	callbacks []func(T, error)
	value     T
	err       error
}

// NewFuture returns an uncompleted future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Succeeded returns a future completed with value.
func Succeeded[T any](value T) *Future[T] {
	f := NewFuture[T]()
	f.Complete(value)
	return f
}

// Failed returns a future failed with err.
func Failed[T any](err error) *Future[T] {
	f := NewFuture[T]()
	f.Fail(err)
	return f
}

// Complete fulfills the future with value. It returns false if the future
// was already completed.
func (f *Future[T]) Complete(value T) bool {
	return f.settle(value, nil)
}

// Fail fulfills the future with err. It returns false if the future was
// already completed.
func (f *Future[T]) Fail(err error) bool {
	var zero T
	return f.settle(zero, err)
}

func (f *Future[T]) settle(value T, err error) (ok bool) {
	f.once.Do(func() {
		f.mu.Lock()
		f.value, f.err = value, err
		callbacks := f.callbacks
		f.callbacks = nil
		close(f.done)
		f.mu.Unlock()
		for _, cb := range callbacks {
			cb(value, err)
		}
		ok = true
	})
	return
}

// Done is closed when the future completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future completes or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the outcome without blocking; ok is false while the
// future is pending.
func (f *Future[T]) Result() (value T, err error, ok bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		return
	}
}

// OnComplete registers fn to run once with the outcome. If the future is
// already completed fn runs immediately on the calling goroutine.
func (f *Future[T]) OnComplete(fn func(T, error)) {
	f.mu.Lock()
	select {
	case <-f.done:
		f.mu.Unlock()
		fn(f.value, f.err)
		return
	default:
	}
	f.callbacks = append(f.callbacks, fn)
	f.mu.Unlock()
}

// Then returns a future completed with fn applied to the value of f.
// Failures of f are passed through without calling fn.
func Then[T, R any](f *Future[T], fn func(T) (R, error)) *Future[R] {
	out := NewFuture[R]()
	f.OnComplete(func(value T, err error) {
		if err != nil {
			out.Fail(err)
			return
		}
		r, err := fn(value)
		if err != nil {
			out.Fail(err)
			return
		}
		out.Complete(r)
	})
	return out
}

// Compose chains a second asynchronous step: fn is called with the value
// of f and the returned future carries the outcome of fn's future.
func Compose[T, R any](f *Future[T], fn func(T) *Future[R]) *Future[R] {
	out := NewFuture[R]()
	f.OnComplete(func(value T, err error) {
		if err != nil {
			out.Fail(err)
			return
		}
		fn(value).OnComplete(func(r R, err error) {
			if err != nil {
				out.Fail(err)
				return
			}
			out.Complete(r)
		})
	})
	return out
}
