// Package bridge executes an asynchronous unit of work from a call site
// whose concurrency context is unknown. The calling goroutine blocks until
// the task finishes; the task itself always runs on a dedicated goroutine,
// so the bridge is safe to invoke from synchronous code, from request
// handlers, and from inside another bridged task without deadlocking.
package bridge

import (
	"context"
	"fmt"
	"runtime/debug"
)

// PanicError wraps a panic recovered from a bridged task so it can be
// re-raised on the caller's goroutine with the worker's stack attached.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in bridged task: %v", e.Value)
}

type outcome[T any] struct {
	value    T
	err      error
	panicked *PanicError
}

// Run executes task on a dedicated goroutine and blocks until it completes
// or ctx expires. Results and errors propagate unchanged; a panic inside the
// task is re-raised on the calling goroutine. When ctx expires first, Run
// returns ctx.Err() and the worker goroutine is left to finish its own
// bounded work (provider calls carry their own timeouts).
func Run[T any](ctx context.Context, task func(context.Context) (T, error)) (T, error) {
	done := make(chan outcome[T], 1)

	go func() {
		var result outcome[T]
		defer func() {
			if r := recover(); r != nil {
				result.panicked = &PanicError{Value: r, Stack: debug.Stack()}
			}
			done <- result
		}()
		result.value, result.err = task(ctx)
	}()

	select {
	case result := <-done:
		if result.panicked != nil {
			panic(result.panicked.Value)
		}
		return result.value, result.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
