package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/worldsync/internal/fingerprint"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/models"
)

// writeAttempts is the number of tries per payload before the failure is
// reported as recoverable.
const writeAttempts = 2

// Payload is a write request carrying the mirrored set at mirror version
// Version. Versions only grow, so a payload never overwrites a newer one.
type Payload struct {
	Version uint64
	Objects []models.WorldObject
}

type writeNowRequest struct {
	payload Payload
	reply   chan writeNowReply
}

type writeNowReply struct {
	snap models.Snapshot
	err  error
}

// DebouncedWriter is a single-consumer coalescing queue in front of a
// SnapshotStore. Requests arriving within the quiet window collapse into one
// write of the most recent payload. The quiet window is armed only by a
// request, and the last payload is flushed when the writer stops.
type DebouncedWriter struct {
	store      SnapshotStore
	quiet      time.Duration
	onComplete func(models.WriteResult)
	logger     *logger.Logger

	mu      sync.Mutex
	latest  *Payload
	written uint64

	notify  chan struct{}
	now     chan writeNowRequest
	stopped chan struct{}
}

// NewDebouncedWriter returns a writer that is idle until Run is called.
// onComplete, when non-nil, is invoked from the writer goroutine after every
// write, successful or not.
func NewDebouncedWriter(store SnapshotStore, quiet time.Duration, onComplete func(models.WriteResult), log *logger.Logger) *DebouncedWriter {
	return &DebouncedWriter{
		store:      store,
		quiet:      quiet,
		onComplete: onComplete,
		logger:     log,
		notify:     make(chan struct{}, 1),
		now:        make(chan writeNowRequest),
		stopped:    make(chan struct{}),
	}
}

// Request schedules p for writing and returns immediately. A newer pending
// payload is never replaced by an older one.
func (w *DebouncedWriter) Request(p Payload) {
	w.mu.Lock()
	if p.Version < w.written || (w.latest != nil && p.Version < w.latest.Version) {
		w.mu.Unlock()
		return
	}
	p.Objects = models.CloneObjects(p.Objects)
	w.latest = &p
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// WriteNow bypasses the quiet window and writes p before returning. Pending
// payloads older than p are discarded since p supersedes them.
func (w *DebouncedWriter) WriteNow(ctx context.Context, p Payload) (models.Snapshot, error) {
	req := writeNowRequest{payload: p, reply: make(chan writeNowReply, 1)}
	select {
	case w.now <- req:
	case <-w.stopped:
		return models.Snapshot{}, ErrWriterClosed
	case <-ctx.Done():
		return models.Snapshot{}, ctx.Err()
	}

	select {
	case rep := <-req.reply:
		return rep.snap, rep.err
	case <-ctx.Done():
		return models.Snapshot{}, ctx.Err()
	}
}

// Pending reports whether a payload is waiting for the quiet window.
func (w *DebouncedWriter) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest != nil
}

// Run is the writer loop. It returns after ctx is cancelled and the trailing
// payload, if any, has been written.
func (w *DebouncedWriter) Run(ctx context.Context) error {
	defer close(w.stopped)

	timer := time.NewTimer(w.quiet)
	timer.Stop()

	// a payload taken off the queue is written even if ctx ends meanwhile
	writeCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			w.flush(writeCtx)
			return nil

		case <-w.notify:
			timer.Reset(w.quiet)

		case <-timer.C:
			w.flush(writeCtx)

		case req := <-w.now:
			w.mu.Lock()
			if w.latest != nil && w.latest.Version <= req.payload.Version {
				w.latest = nil
			}
			w.mu.Unlock()

			snap, err := w.write(writeCtx, req.payload)
			req.reply <- writeNowReply{snap: snap, err: err}
		}
	}
}

func (w *DebouncedWriter) flush(ctx context.Context) {
	w.mu.Lock()
	p := w.latest
	w.latest = nil
	w.mu.Unlock()

	if p == nil {
		return
	}
	_, _ = w.write(ctx, *p) // reported via onComplete
}

func (w *DebouncedWriter) write(ctx context.Context, p Payload) (models.Snapshot, error) {
	var (
		snap models.Snapshot
		err  error
		n    int
	)
	for n = 1; n <= writeAttempts; n++ {
		snap, err = w.store.Write(ctx, p.Objects)
		if err == nil || errors.Is(err, context.Canceled) {
			break
		}
		w.logger.Warn().Err(err).
			Str("func", "DebouncedWriter.write").
			Int("attempt", n).
			Uint64("version", p.Version).
			Msg("snapshot write attempt failed")
	}
	if n > writeAttempts {
		n = writeAttempts
	}

	res := models.WriteResult{
		Objects:     p.Objects,
		Fingerprint: fingerprint.Of(p.Objects).String(),
		Attempts:    n,
	}
	if err != nil {
		err = errors.Join(ErrSnapshotWrite, err)
		res.Err = err
	} else {
		w.mu.Lock()
		if p.Version > w.written {
			w.written = p.Version
		}
		w.mu.Unlock()
	}

	if w.onComplete != nil {
		w.onComplete(res)
	}
	return snap, err
}
