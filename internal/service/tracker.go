package service

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/worldsync/internal/metrics"
	"github.com/MKhiriev/worldsync/internal/utils"
	"github.com/MKhiriev/worldsync/models"
)

// Tracker owns the local mutation intents awaiting confirmation. At most one
// op is live per target id. Register, TryMatch, MatchState, SweepTimeouts,
// Cancel and CancelBatch are the only mutators and all run under one mutex.
type Tracker struct {
	mu       sync.Mutex
	byTarget map[string]*models.PendingOp
	byID     map[string]string
	batches  map[string]*Batch

	// trail holds the expected states of ops superseded on a target whose
	// intent is still live. A nil entry is a pending absence.
	trail map[string][]*models.WorldObject

	timeout time.Duration
	ids     utils.IDGenerator
	now     func() time.Time
}

// NewTracker returns a tracker that times ops out after timeout. A
// non-positive timeout disables SweepTimeouts.
func NewTracker(timeout time.Duration, ids utils.IDGenerator) *Tracker {
	return &Tracker{
		byTarget: make(map[string]*models.PendingOp),
		byID:     make(map[string]string),
		batches:  make(map[string]*Batch),
		trail:    make(map[string][]*models.WorldObject),
		timeout:  timeout,
		ids:      ids,
		now:      time.Now,
	}
}

// Register records op as pending and returns the stored copy with its ID,
// IssuedAt and Status filled in. A live op for the same target is dropped as
// superseded and never credited.
func (t *Tracker) Register(op models.PendingOp) models.PendingOp {
	t.mu.Lock()
	defer t.mu.Unlock()

	op = t.registerLocked(op)
	metrics.PendingOps.Set(float64(len(t.byTarget)))
	return op
}

// RegisterBatch registers ops as one group. The batch completes when every
// member is committed and fails as soon as one times out, is superseded or
// is cancelled.
func (t *Tracker) RegisterBatch(ops []models.PendingOp) *Batch {
	t.mu.Lock()
	defer t.mu.Unlock()

	b := newBatch(t.ids.Generate(), len(ops))
	t.batches[b.ID] = b
	for _, op := range ops {
		op.BatchID = b.ID
		t.registerLocked(op)
	}
	if b.pending == 0 {
		t.finishBatchLocked(b, nil)
	}
	metrics.PendingOps.Set(float64(len(t.byTarget)))
	return b
}

func (t *Tracker) registerLocked(op models.PendingOp) models.PendingOp {
	if op.ID == "" {
		op.ID = t.ids.Generate()
	}
	if op.IssuedAt.IsZero() {
		op.IssuedAt = t.now()
	}
	op.Status = models.OpPending
	if op.Expected != nil {
		expected := op.Expected.Clone()
		op.Expected = &expected
	}

	if prev, ok := t.byTarget[op.TargetID]; ok {
		t.trail[op.TargetID] = append(t.trail[op.TargetID], prev.Expected)
		t.removeLocked(prev, models.OpSuperseded)
		metrics.PendingSupersededTotal.Inc()
	}

	stored := op
	t.byTarget[op.TargetID] = &stored
	t.byID[op.ID] = op.TargetID
	return op
}

// TryMatch credits the live op for the event's row when the event shows the
// op's expected post-state. The matched op is removed and returned with
// status Committed.
func (t *Tracker) TryMatch(ev models.RowEvent) (models.PendingOp, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	op, ok := t.byTarget[ev.ID]
	if !ok || !eventMatches(*op, ev) {
		return models.PendingOp{}, false
	}

	committed := *op
	committed.Status = models.OpCommitted
	t.removeLocked(op, models.OpCommitted)
	metrics.PendingOps.Set(float64(len(t.byTarget)))
	return committed, true
}

// MatchState commits every live op whose expected post-state already holds
// according to lookup. It is used after a re-baseline, when the events that
// confirmed those ops may have been missed.
func (t *Tracker) MatchState(lookup func(id string) (models.WorldObject, bool)) []models.PendingOp {
	t.mu.Lock()
	defer t.mu.Unlock()

	var committed []models.PendingOp
	for _, op := range t.sortedLocked() {
		row, present := lookup(op.TargetID)
		holds := (op.Expected == nil && !present) ||
			(op.Expected != nil && present && row.Equal(*op.Expected))
		if !holds {
			continue
		}
		done := *op
		done.Status = models.OpCommitted
		t.removeLocked(op, models.OpCommitted)
		committed = append(committed, done)
	}
	metrics.PendingOps.Set(float64(len(t.byTarget)))
	return committed
}

// SweepTimeouts removes ops older than the timeout at now and returns them
// with status TimedOut.
func (t *Tracker) SweepTimeouts(now time.Time) []models.PendingOp {
	if t.timeout <= 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var expired []models.PendingOp
	for _, op := range t.sortedLocked() {
		if op.Age(now) <= t.timeout {
			continue
		}
		timedOut := *op
		timedOut.Status = models.OpTimedOut
		t.removeLocked(op, models.OpTimedOut)
		expired = append(expired, timedOut)
	}
	metrics.PendingOps.Set(float64(len(t.byTarget)))
	return expired
}

// Cancel withdraws an op whose mutation request could not be sent.
func (t *Tracker) Cancel(opID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	target, ok := t.byID[opID]
	if !ok {
		return false
	}
	t.removeLocked(t.byTarget[target], 0)
	metrics.PendingOps.Set(float64(len(t.byTarget)))
	return true
}

// CancelBatch withdraws the remaining members of b and fails it if it is
// still open.
func (t *Tracker) CancelBatch(b *Batch) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for target, op := range t.byTarget {
		if op.BatchID == b.ID {
			delete(t.byTarget, target)
			delete(t.byID, op.ID)
			delete(t.trail, target)
		}
	}
	t.finishBatchLocked(b, ErrBatchCancelled)
	metrics.PendingOps.Set(float64(len(t.byTarget)))
}

// Expected returns the expected post-state of the live op on id. ok is false
// when no op is live; a nil row with ok true means a delete is pending.
func (t *Tracker) Expected(id string) (*models.WorldObject, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	op, ok := t.byTarget[id]
	if !ok {
		return nil, false
	}
	if op.Expected == nil {
		return nil, true
	}
	expected := op.Expected.Clone()
	return &expected, true
}

// LiveIDs returns the target ids that have a live op.
func (t *Tracker) LiveIDs() map[string]struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make(map[string]struct{}, len(t.byTarget))
	for id := range t.byTarget {
		ids[id] = struct{}{}
	}
	return ids
}

// Intents returns, per target id with a live op, every row state the local
// intent may show on the remote side before its commit.
func (t *Tracker) Intents() IntentStates {
	t.mu.Lock()
	defer t.mu.Unlock()

	intents := make(IntentStates, len(t.byTarget))
	for id, op := range t.byTarget {
		states := make([]*models.WorldObject, 0, len(t.trail[id])+1)
		states = append(states, t.trail[id]...)
		intents[id] = append(states, op.Expected)
	}
	return intents
}

// Len returns the number of live ops.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byTarget)
}

// Ops returns copies of the live ops, oldest first.
func (t *Tracker) Ops() []models.PendingOp {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.PendingOp, 0, len(t.byTarget))
	for _, op := range t.sortedLocked() {
		out = append(out, *op)
	}
	return out
}

func (t *Tracker) sortedLocked() []*models.PendingOp {
	ops := make([]*models.PendingOp, 0, len(t.byTarget))
	for _, op := range t.byTarget {
		ops = append(ops, op)
	}
	slices.SortFunc(ops, func(a, b *models.PendingOp) int {
		if c := a.IssuedAt.Compare(b.IssuedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return ops
}

// removeLocked drops op and reports the outcome to its batch. A zero status
// means the op was cancelled.
func (t *Tracker) removeLocked(op *models.PendingOp, status models.OpStatus) {
	delete(t.byTarget, op.TargetID)
	delete(t.byID, op.ID)
	if status != models.OpSuperseded {
		delete(t.trail, op.TargetID)
	}

	if op.BatchID == "" {
		return
	}
	b, ok := t.batches[op.BatchID]
	if !ok {
		return
	}
	switch status {
	case models.OpCommitted:
		b.pending--
		if b.pending == 0 {
			t.finishBatchLocked(b, nil)
		}
	case models.OpTimedOut:
		t.finishBatchLocked(b, ErrBatchTimedOut)
	case models.OpSuperseded:
		t.finishBatchLocked(b, ErrBatchSuperseded)
	default:
		t.finishBatchLocked(b, ErrBatchCancelled)
	}
}

func (t *Tracker) finishBatchLocked(b *Batch, err error) {
	if _, open := t.batches[b.ID]; !open {
		return
	}
	delete(t.batches, b.ID)
	b.err = err
	close(b.done)
}

func eventMatches(op models.PendingOp, ev models.RowEvent) bool {
	if op.Expected == nil {
		return ev.Kind == models.RowDeleted
	}
	return ev.Kind != models.RowDeleted && ev.Row != nil && ev.Row.Equal(*op.Expected)
}

// IntentStates maps a target id to the row states its local intent may show
// on the remote side: the expected post-state of the live op and of every op
// it superseded. A nil state stands for absence.
type IntentStates map[string][]*models.WorldObject

// Allows reports whether row, nil meaning absent, is one of the intent
// states of id.
func (s IntentStates) Allows(id string, row *models.WorldObject) bool {
	for _, state := range s[id] {
		switch {
		case state == nil && row == nil:
			return true
		case state != nil && row != nil && state.Equal(*row):
			return true
		}
	}
	return false
}

// With returns a copy of s that also allows state on id.
func (s IntentStates) With(id string, state *models.WorldObject) IntentStates {
	out := make(IntentStates, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[id] = append(slices.Clip(out[id]), state)
	return out
}

// Batch is a group of ops registered together for a bulk replace.
type Batch struct {
	ID string

	size    int
	pending int
	err     error
	done    chan struct{}
}

func newBatch(id string, size int) *Batch {
	return &Batch{ID: id, size: size, pending: size, done: make(chan struct{})}
}

// Size returns the number of members the batch was registered with.
func (b *Batch) Size() int {
	return b.size
}

// Done is closed once the batch completed or failed.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Err returns nil while the batch is open or after it completed, and the
// failure cause otherwise.
func (b *Batch) Err() error {
	select {
	case <-b.done:
		return b.err
	default:
		return nil
	}
}

// Wait blocks until the batch is finished or ctx is done.
func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return b.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
