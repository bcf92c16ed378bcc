package scheduler

import (
	"context"
)

type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

type Future[T any] struct {
	input  chan T
	cancel context.CancelFunc
}

func NewFuture[T any](input chan T, cancel context.CancelFunc) *Future[T] {
	return &Future[T]{
		input:  input,
		cancel: cancel,
	}
}

func (f *Future[T]) C() chan T {
	return f.input
}

func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the work finishes or ctx is done. On ctx cancellation the
// work is stopped and its result is still drained so the worker is never leaked.
func Wait[T any](ctx context.Context, f *Future[Result[T]]) (T, error) {
	select {
	case r := <-f.C():
		return r.Data, r.Err
	case <-ctx.Done():
		f.Stop()
		r := <-f.C()
		if r.Err == nil {
			return r.Data, ctx.Err()
		}
		return r.Data, r.Err
	}
}
