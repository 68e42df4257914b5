// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package worlddb is the authoritative world-object table used as the
// development remote store. Every committed change is appended to an ordered
// event log that subscribers read by sequence number, in-process or through
// the HTTP gateway.
package worlddb

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/validators"
	"github.com/MKhiriev/worldsync/models"
)

// DefaultLogSize is the number of events retained for subscribers.
const DefaultLogSize = 10_000

type Option func(*World)

// WithLogSize bounds the retained event log.
func WithLogSize(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.logSize = n
		}
	}
}

// World holds the rows and the event log behind one mutex. Reducers are
// all-or-nothing: a failed reducer emits no events.
type World struct {
	mu      sync.Mutex
	rows    map[string]models.WorldObject
	events  []models.RowEvent
	seq     uint64
	changed chan struct{}
	logSize int

	validator validators.Validator
	logger    *logger.Logger
}

func New(log *logger.Logger, opts ...Option) *World {
	w := &World{
		rows:      make(map[string]models.WorldObject),
		changed:   make(chan struct{}),
		logSize:   DefaultLogSize,
		validator: validators.NewWorldObjectValidator(),
		logger:    log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Rows returns the table sorted by id together with the sequence number of
// the last event it reflects.
func (w *World) Rows() ([]models.WorldObject, uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows := make([]models.WorldObject, 0, len(w.rows))
	for _, row := range w.rows {
		rows = append(rows, row.Clone())
	}
	slices.SortFunc(rows, func(a, b models.WorldObject) int { return strings.Compare(a.ID, b.ID) })
	return rows, w.seq
}

// Seq returns the sequence number of the last committed event.
func (w *World) Seq() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq
}

// EventsSince returns the events with sequence numbers greater than after,
// in order, and the cursor to pass next time.
func (w *World) EventsSince(after uint64) ([]models.RowEvent, uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.eventsSinceLocked(after)
}

func (w *World) eventsSinceLocked(after uint64) ([]models.RowEvent, uint64, error) {
	if after > w.seq {
		return nil, w.seq, fmt.Errorf("%w: cursor %d is ahead of %d", ErrEventsExpired, after, w.seq)
	}
	if after == w.seq {
		return nil, w.seq, nil
	}

	oldest := w.seq - uint64(len(w.events)) + 1
	if after+1 < oldest {
		return nil, w.seq, fmt.Errorf("%w: cursor %d is older than %d", ErrEventsExpired, after, oldest)
	}

	tail := w.events[after+1-oldest:]
	out := make([]models.RowEvent, len(tail))
	for i, ev := range tail {
		out[i] = cloneEvent(ev)
	}
	return out, w.seq, nil
}

// Wait blocks until events after the cursor exist or ctx is done. A done
// context is not an error: the caller gets an empty batch and the same cursor.
func (w *World) Wait(ctx context.Context, after uint64) ([]models.RowEvent, uint64, error) {
	for {
		w.mu.Lock()
		events, next, err := w.eventsSinceLocked(after)
		changed := w.changed
		w.mu.Unlock()

		if err != nil || len(events) > 0 {
			return events, next, err
		}

		select {
		case <-ctx.Done():
			return nil, after, nil
		case <-changed:
		}
	}
}

// Insert adds a new row.
func (w *World) Insert(obj models.WorldObject) error {
	if err := w.validator.Validate(context.Background(), obj); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}
	path, _ := validators.NormalizeAssetPath(obj.AssetPath)
	obj.AssetPath = path

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.rows[obj.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, obj.ID)
	}
	w.upsertLocked(obj)
	w.publishLocked()
	return nil
}

// SetTransform replaces translation, rotation and scale of an existing row.
func (w *World) SetTransform(id string, t models.Transform) error {
	if err := w.validator.Validate(context.Background(), models.SetTransformRequest{ID: id, Transform: t}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	row, ok := w.rows[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	row.Transform = t
	w.upsertLocked(row)
	w.publishLocked()
	return nil
}

// SetCollision replaces the collision shape of an existing row. A nil shape
// clears it.
func (w *World) SetCollision(id string, shape *models.CollisionShape) error {
	if err := w.validator.Validate(context.Background(), models.SetCollisionRequest{ID: id, CollisionShape: shape}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	row, ok := w.rows[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	row.CollisionShape = shape.Clone()
	w.upsertLocked(row)
	w.publishLocked()
	return nil
}

// Delete removes an existing row.
func (w *World) Delete(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.rows[id]; !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	w.deleteLocked(id)
	w.publishLocked()
	return nil
}

// ReplaceAll makes the table equal to objects in one step. Rows absent from
// objects are deleted, and every given row is emitted as an insert or an
// update, even when its content is unchanged.
func (w *World) ReplaceAll(objects []models.WorldObject) error {
	if err := w.validator.Validate(context.Background(), models.ReplaceAllRequest{Objects: objects}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}

	keep := make(map[string]struct{}, len(objects))
	normalized := make([]models.WorldObject, len(objects))
	for i, obj := range objects {
		obj = obj.Clone()
		obj.AssetPath, _ = validators.NormalizeAssetPath(obj.AssetPath)
		normalized[i] = obj
		keep[obj.ID] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, id := range w.sortedIDsLocked() {
		if _, ok := keep[id]; !ok {
			w.deleteLocked(id)
		}
	}
	for _, obj := range normalized {
		w.upsertLocked(obj)
	}
	w.publishLocked()

	w.logger.Info().
		Str("func", "World.ReplaceAll").
		Int("rows", len(normalized)).
		Uint64("seq", w.seq).
		Msg("table replaced")
	return nil
}

// Wipe deletes every row. It stands in for external data loss on the remote
// side, such as a database reset.
func (w *World) Wipe() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids := w.sortedIDsLocked()
	for _, id := range ids {
		w.deleteLocked(id)
	}
	w.publishLocked()

	w.logger.Warn().
		Str("func", "World.Wipe").
		Int("rows", len(ids)).
		Msg("table wiped")
	return len(ids)
}

func (w *World) upsertLocked(obj models.WorldObject) {
	kind := models.RowInserted
	if _, ok := w.rows[obj.ID]; ok {
		kind = models.RowUpdated
	}
	w.rows[obj.ID] = obj.Clone()

	row := obj.Clone()
	w.appendLocked(models.RowEvent{Kind: kind, ID: obj.ID, Row: &row})
}

func (w *World) deleteLocked(id string) {
	delete(w.rows, id)
	w.appendLocked(models.RowEvent{Kind: models.RowDeleted, ID: id})
}

func (w *World) appendLocked(ev models.RowEvent) {
	w.seq++
	ev.Seq = w.seq
	w.events = append(w.events, ev)
	if over := len(w.events) - w.logSize; over > 0 {
		w.events = slices.Delete(w.events, 0, over)
	}
}

// publishLocked wakes every waiter once per committed reducer.
func (w *World) publishLocked() {
	close(w.changed)
	w.changed = make(chan struct{})
}

func (w *World) sortedIDsLocked() []string {
	ids := make([]string, 0, len(w.rows))
	for id := range w.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func cloneEvent(ev models.RowEvent) models.RowEvent {
	if ev.Row != nil {
		row := ev.Row.Clone()
		ev.Row = &row
	}
	return ev
}
