// Package workers runs the long-lived parts of a process as one unit.
// The first worker to fail cancels the others, and Run returns once every
// worker has stopped.
package workers

import "context"

// Worker is a long-lived process component. Run blocks until ctx is done or
// the worker fails.
type Worker interface {
	Run(ctx context.Context) error
}

// Func adapts an ordinary function to [Worker].
type Func func(ctx context.Context) error

func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}
