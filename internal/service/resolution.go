package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/worldsync/internal/adapter"
	"github.com/MKhiriev/worldsync/internal/fingerprint"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/metrics"
	"github.com/MKhiriev/worldsync/internal/store"
	"github.com/MKhiriev/worldsync/internal/utils"
	"github.com/MKhiriev/worldsync/models"
)

type resolutionCoordinator struct {
	snapshots store.SnapshotStore
	writer    SnapshotWriter
	journal   store.ResolutionJournal
	remote    adapter.RemoteStore

	tracker  *Tracker
	mirror   *Mirror
	state    *StateMachine
	detector recheckRequester
	observer Observer

	ids    utils.IDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewResolutionCoordinator wires the resolution actions. journal may be nil.
func NewResolutionCoordinator(
	snapshots store.SnapshotStore,
	writer SnapshotWriter,
	journal store.ResolutionJournal,
	remote adapter.RemoteStore,
	tracker *Tracker,
	mirror *Mirror,
	state *StateMachine,
	detector recheckRequester,
	observer Observer,
	ids utils.IDGenerator,
	log *logger.Logger,
) Resolver {
	return &resolutionCoordinator{
		snapshots: snapshots,
		writer:    writer,
		journal:   journal,
		remote:    remote,
		tracker:   tracker,
		mirror:    mirror,
		state:     state,
		detector:  detector,
		observer:  observer,
		ids:       ids,
		now:       time.Now,
		logger:    log,
	}
}

// AcceptSnapshot implements [Resolver]. It reads the snapshot, registers a
// batch with an insert op for every snapshot row and a delete op for every
// mirrored id the snapshot lacks, sends one ReplaceAll, and waits for the
// batch. The state returns to InSync only when the remote set then matches
// the snapshot.
func (c *resolutionCoordinator) AcceptSnapshot(ctx context.Context) (models.ResolutionRecord, error) {
	return c.run(ctx, models.ActionAcceptSnapshot, c.acceptSnapshot)
}

// AcceptRemote implements [Resolver]. It writes the mirrored set to the
// snapshot immediately and returns to InSync.
func (c *resolutionCoordinator) AcceptRemote(ctx context.Context) (models.ResolutionRecord, error) {
	return c.run(ctx, models.ActionAcceptRemote, c.acceptRemote)
}

func (c *resolutionCoordinator) run(
	ctx context.Context,
	action models.ResolutionAction,
	fn func(context.Context, *models.ResolutionRecord) error,
) (models.ResolutionRecord, error) {
	if err := c.state.BeginResolution(); err != nil {
		return models.ResolutionRecord{}, err
	}
	defer c.state.EndResolution()

	rec := models.ResolutionRecord{
		ID:        c.ids.Generate(),
		Action:    action,
		StartedAt: c.now().UTC(),
	}
	log := c.logger.With().Str("resolution_id", rec.ID).Str("action", string(action)).Logger()
	log.Info().Str("func", "resolutionCoordinator.run").Msg("resolution started")

	err := fn(ctx, &rec)

	rec.FinishedAt = c.now().UTC()
	rec.Outcome = models.OutcomeSucceeded
	if err != nil {
		rec.Outcome = models.OutcomeFailed
		rec.Error = err.Error()
		err = fmt.Errorf("%w: %w", ErrResolutionFailed, err)
	}

	metrics.ResolutionsTotal.WithLabelValues(string(action), string(rec.Outcome)).Inc()
	metrics.ResolutionDurationSeconds.WithLabelValues(string(action)).Observe(rec.FinishedAt.Sub(rec.StartedAt).Seconds())

	if c.journal != nil {
		if jerr := c.journal.Record(context.WithoutCancel(ctx), rec); jerr != nil {
			log.Err(jerr).Str("func", "resolutionCoordinator.run").Msg("failed to journal resolution")
		}
	}

	if err != nil {
		log.Err(err).Str("func", "resolutionCoordinator.run").Msg("resolution failed")
		c.observer.Warning(models.Warning{
			Kind:    models.WarningResolutionFailed,
			Message: err.Error(),
			At:      c.now(),
		})
		return rec, err
	}

	log.Info().
		Str("func", "resolutionCoordinator.run").
		Int("objects", rec.ObjectCount).
		Str("fingerprint", rec.SnapshotFingerprint).
		Msg("resolution succeeded")
	c.detector.RequestRecheck()
	return rec, nil
}

func (c *resolutionCoordinator) acceptSnapshot(ctx context.Context, rec *models.ResolutionRecord) error {
	snap, err := c.snapshots.Read(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) || errors.Is(err, store.ErrCorruptSnapshot) {
			return fmt.Errorf("%w: %w", ErrNoUsableSnapshot, err)
		}
		return fmt.Errorf("read snapshot: %w", err)
	}

	objects := fingerprint.Canonicalize(snap.WorldObjects)
	rec.SnapshotFingerprint = fingerprint.Of(objects).String()
	rec.ObjectCount = len(objects)

	batch := c.tracker.RegisterBatch(replaceOps(objects, c.mirror.Objects()))

	if err = c.remote.ReplaceAll(ctx, objects); err != nil {
		c.tracker.CancelBatch(batch)
		return fmt.Errorf("send replace_all: %w", err)
	}
	if err = batch.Wait(ctx); err != nil {
		c.tracker.CancelBatch(batch)
		return fmt.Errorf("await %d confirmations: %w", batch.Size(), err)
	}

	remote, version := c.mirror.Snapshot()
	rec.RemoteFingerprint = fingerprint.Of(remote).String()
	if err = c.state.Resolve(objects, remote); err != nil {
		return err
	}

	// the file already holds this content, rewriting it drops older queued payloads
	if _, err = c.writer.WriteNow(ctx, store.Payload{Version: version, Objects: remote}); err != nil {
		c.logger.Warn().Err(err).Str("func", "resolutionCoordinator.acceptSnapshot").Msg("snapshot rewrite after resolution failed")
	}
	return nil
}

func (c *resolutionCoordinator) acceptRemote(ctx context.Context, rec *models.ResolutionRecord) error {
	objects, version := c.mirror.Snapshot()
	rec.RemoteFingerprint = fingerprint.Of(objects).String()
	rec.ObjectCount = len(objects)

	snap, err := c.writer.WriteNow(ctx, store.Payload{Version: version, Objects: objects})
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	rec.SnapshotFingerprint = fingerprint.Of(snap.WorldObjects).String()

	return c.state.Resolve(snap.WorldObjects, objects)
}

// replaceOps builds the expected outcome of replacing mirrored with objects.
func replaceOps(objects, mirrored []models.WorldObject) []models.PendingOp {
	keep := make(map[string]struct{}, len(objects))
	ops := make([]models.PendingOp, 0, len(objects)+len(mirrored))

	for _, obj := range objects {
		keep[obj.ID] = struct{}{}
		expected := obj.Clone()
		ops = append(ops, models.PendingOp{Kind: models.OpInsert, TargetID: obj.ID, Expected: &expected})
	}
	for _, obj := range mirrored {
		if _, ok := keep[obj.ID]; !ok {
			ops = append(ops, models.PendingOp{Kind: models.OpDelete, TargetID: obj.ID})
		}
	}
	return ops
}
