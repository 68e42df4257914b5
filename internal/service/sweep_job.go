package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/metrics"
	"github.com/MKhiriev/worldsync/models"
)

// DefaultSweepInterval is used when Start is given a non-positive interval.
const DefaultSweepInterval = time.Second

// SweepJob periodically removes pending ops that waited longer than the
// tracker timeout. It is the only time-based mechanism of the sync layer
// and touches bookkeeping only: every timed-out op becomes a warning and the
// detector is asked for a recheck.
type SweepJob struct {
	tracker  *Tracker
	detector recheckRequester
	observer Observer
	logger   *logger.Logger
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSweepJob creates a job that is idle until Start is called.
func NewSweepJob(tracker *Tracker, detector recheckRequester, observer Observer, log *logger.Logger) *SweepJob {
	return &SweepJob{
		tracker:  tracker,
		detector: detector,
		observer: observer,
		logger:   log,
		now:      time.Now,
	}
}

// Start stops any previously running sweep and launches a goroutine that
// sweeps every interval until ctx is cancelled or Stop is called.
func (j *SweepJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.Sweep()
			}
		}
	}()
}

// Stop cancels the sweep goroutine and waits for it to exit. It is a no-op
// when the job is not running.
func (j *SweepJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Sweep runs one pass and returns the ops that timed out.
func (j *SweepJob) Sweep() []models.PendingOp {
	now := j.now()
	expired := j.tracker.SweepTimeouts(now)
	if len(expired) == 0 {
		return nil
	}

	for _, op := range expired {
		metrics.PendingTimeoutsTotal.Inc()
		j.logger.Warn().
			Str("func", "SweepJob.Sweep").
			Str("op_id", op.ID).
			Str("kind", op.Kind.String()).
			Str("target_id", op.TargetID).
			Dur("age", op.Age(now)).
			Msg("pending op timed out")
		j.observer.Warning(models.Warning{
			Kind:     models.WarningPendingTimeout,
			Message:  fmt.Sprintf("%s of %s was not confirmed after %s", op.Kind, op.TargetID, op.Age(now).Round(time.Millisecond)),
			TargetID: op.TargetID,
			At:       now,
		})
	}
	j.detector.RequestRecheck()
	return expired
}
