package asset

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is the pending result of an asynchronous load.
type Task[T any] struct {
	name string
	done chan struct{}
	val  T
	err  error
}

func newTask[T any](name string) *Task[T] {
	return &Task[T]{name: name, done: make(chan struct{})}
}

func (t *Task[T]) finish(v T, err error) {
	t.val, t.err = v, err
	close(t.done)
}

// Name returns the registry name the task loads into.
func (t *Task[T]) Name() string { return t.name }

// Done is closed once the load has finished, successfully or not.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Wait blocks until the load finishes or ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Await is Wait without the value.
func (t *Task[T]) Await(ctx context.Context) error {
	_, err := t.Wait(ctx)
	return err
}

// Awaiter is implemented by every *Task.
type Awaiter interface {
	Await(ctx context.Context) error
}

// WaitAll blocks until every task has finished. It returns the first load
// failure, or ctx's error if ctx ends first. There is no partial success.
func WaitAll(ctx context.Context, tasks ...Awaiter) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		g.Go(func() error { return t.Await(gctx) })
	}
	return g.Wait()
}
