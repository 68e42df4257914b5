package workers

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/worldsync/internal/logger"
)

type named struct {
	name   string
	worker Worker
}

// Workers is an ordered set of named workers.
type Workers struct {
	workers []named
	logger  *logger.Logger
}

func New(log *logger.Logger) *Workers {
	return &Workers{logger: log}
}

// Add registers w under name. Nil workers are ignored.
func (w *Workers) Add(name string, worker Worker) *Workers {
	if worker != nil {
		w.workers = append(w.workers, named{name: name, worker: worker})
	}
	return w
}

// Len returns the number of registered workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker and waits for all of them. A worker returning
// ends the group: the shared context is cancelled and the first non-nil
// error is returned. context.Canceled caused by that shutdown is not an
// error.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	stopCtx, stop := context.WithCancel(gctx)
	defer stop()

	for _, nw := range w.workers {
		g.Go(func() error {
			defer stop()
			err := nw.worker.Run(stopCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Error().Err(err).Str("worker", nw.name).Msg("worker failed")
				return err
			}
			w.logger.Debug().Str("worker", nw.name).Msg("worker stopped")
			return nil
		})
	}
	return g.Wait()
}
