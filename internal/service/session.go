// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/worldsync/internal/adapter"
	"github.com/MKhiriev/worldsync/internal/config"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/metrics"
	"github.com/MKhiriev/worldsync/internal/store"
	"github.com/MKhiriev/worldsync/internal/utils"
	"github.com/MKhiriev/worldsync/internal/validators"
	"github.com/MKhiriev/worldsync/models"
)

// Session is the application-scoped sync context. It is created once the
// remote adapter exists and lives until Run returns.
type Session struct {
	mirror   *Mirror
	tracker  *Tracker
	state    *StateMachine
	detector *Detector
	writer   *store.DebouncedWriter
	editor   Editor
	resolver Resolver
	sweep    *SweepJob
	hub      *ObserverHub

	remote    adapter.RemoteStore
	snapshots store.SnapshotStore
	journal   store.ResolutionJournal

	sweepInterval time.Duration
	logger        *logger.Logger
}

// NewSession wires the sync components. journal may be nil.
func NewSession(
	cfg config.ClientConfig,
	remote adapter.RemoteStore,
	snapshots store.SnapshotStore,
	journal store.ResolutionJournal,
	ids utils.IDGenerator,
	log *logger.Logger,
) *Session {
	s := &Session{
		remote:        remote,
		snapshots:     snapshots,
		journal:       journal,
		hub:           NewObserverHub(),
		sweepInterval: cfg.Workers.SweepInterval,
		logger:        log,
	}

	s.mirror = NewMirror()
	s.tracker = NewTracker(cfg.Workers.PendingTimeout, ids)
	s.state = NewStateMachine(s.hub.StateChanged, log)
	s.writer = store.NewDebouncedWriter(snapshots, cfg.Storage.Snapshot.Debounce, s.writeCompleted, log)
	s.detector = NewDetector(s.mirror, s.tracker, s.state, s.writer, s.hub, log)
	s.editor = NewEditor(remote, s.tracker, s.mirror, s.state, validators.NewWorldObjectValidator(), ids, log)
	s.resolver = NewResolutionCoordinator(snapshots, s.writer, journal, remote,
		s.tracker, s.mirror, s.state, s.detector, s.hub, ids, log)
	s.sweep = NewSweepJob(s.tracker, s.detector, s.hub, log)

	return s
}

// Observe attaches o to every notification the session emits.
func (s *Session) Observe(o Observer) {
	s.hub.Attach(o)
}

func (s *Session) Mirror() MirrorView {
	return s.mirror
}

func (s *Session) Editor() Editor {
	return s.editor
}

func (s *Session) Resolver() Resolver {
	return s.resolver
}

// State returns the current sync state.
func (s *Session) State() models.SyncState {
	return s.state.State()
}

// Pending returns the ops still waiting for confirmation, oldest first.
func (s *Session) Pending() []models.PendingOp {
	return s.tracker.Ops()
}

// RecentResolutions returns the latest journaled resolution attempts.
func (s *Session) RecentResolutions(ctx context.Context, limit uint64) ([]models.ResolutionRecord, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.Recent(ctx, limit)
}

// Run loads the snapshot baseline, subscribes to the remote store, and
// drives the detector, the snapshot writer, and the pending sweep until ctx
// is done. The trailing snapshot payload is written before Run returns.
func (s *Session) Run(ctx context.Context) error {
	if err := s.loadBaseline(ctx); err != nil {
		return err
	}

	messages, err := s.remote.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to remote store: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return s.writer.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return s.detector.Run(gctx, messages)
	})

	s.sweep.Start(gctx, s.sweepInterval)
	defer s.sweep.Stop()

	s.logger.Info().Str("func", "Session.Run").Str("snapshot", s.snapshots.Path()).Msg("sync session started")
	err = g.Wait()
	s.logger.Info().Str("func", "Session.Run").Msg("sync session stopped")
	return err
}

// loadBaseline installs the snapshot as the committed baseline. A missing or
// corrupt file counts as an empty set.
func (s *Session) loadBaseline(ctx context.Context) error {
	snap, err := s.snapshots.Read(ctx)
	switch {
	case err == nil:
		s.state.LoadBaseline(snap.WorldObjects)
		metrics.SnapshotObjects.Set(float64(len(snap.WorldObjects)))
		s.logger.Info().
			Str("func", "Session.loadBaseline").
			Int("objects", len(snap.WorldObjects)).
			Msg("snapshot loaded")
		return nil

	case errors.Is(err, store.ErrSnapshotNotFound):
		s.state.LoadBaseline(nil)
		s.logger.Info().Str("func", "Session.loadBaseline").Msg("no snapshot yet, starting from an empty baseline")
		return nil

	case errors.Is(err, store.ErrCorruptSnapshot):
		s.state.LoadBaseline(nil)
		s.logger.Warn().Err(err).Str("func", "Session.loadBaseline").Msg("snapshot unusable, starting from an empty baseline")
		s.hub.Warning(models.Warning{
			Kind:    models.WarningCorruptSnapshot,
			Message: err.Error(),
			At:      time.Now(),
		})
		return nil

	default:
		return fmt.Errorf("load snapshot: %w", err)
	}
}

func (s *Session) writeCompleted(res models.WriteResult) {
	if res.Err != nil {
		metrics.SnapshotWritesTotal.WithLabelValues("failed").Inc()
		s.logger.Err(res.Err).
			Str("func", "Session.writeCompleted").
			Int("attempts", res.Attempts).
			Msg("snapshot write failed")
		s.hub.Warning(models.Warning{
			Kind:    models.WarningSnapshotWrite,
			Message: res.Err.Error(),
			At:      time.Now(),
		})
		return
	}

	metrics.SnapshotWritesTotal.WithLabelValues("ok").Inc()
	metrics.SnapshotObjects.Set(float64(len(res.Objects)))
	s.logger.Debug().
		Str("func", "Session.writeCompleted").
		Str("fingerprint", res.Fingerprint).
		Int("objects", len(res.Objects)).
		Msg("snapshot written")
}
