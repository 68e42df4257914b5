package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/worldsync/internal/store"
	"github.com/MKhiriev/worldsync/models"
)

// seqIDs generates predictable ids: prefix-1, prefix-2, ...
type seqIDs struct {
	prefix string
	n      atomic.Int64
}

func (g *seqIDs) Generate() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1))
}

func object(id string, x float32) models.WorldObject {
	t := models.IdentityTransform()
	t.Translation.X = x
	return models.WorldObject{ID: id, AssetPath: "models/" + id + ".gltf", Transform: t}
}

func ptr(obj models.WorldObject) *models.WorldObject {
	return &obj
}

func upsert(seq uint64, kind models.RowEventKind, obj models.WorldObject) models.RowEvent {
	return models.RowEvent{Seq: seq, Kind: kind, ID: obj.ID, Row: ptr(obj)}
}

func deleted(seq uint64, id string) models.RowEvent {
	return models.RowEvent{Seq: seq, Kind: models.RowDeleted, ID: id}
}

// recordingObserver keeps every notification it receives.
type recordingObserver struct {
	mu       sync.Mutex
	states   []models.SyncState
	changes  []models.MirrorChange
	warnings []models.Warning
}

func (o *recordingObserver) StateChanged(st models.SyncState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.states = append(o.states, st)
}

func (o *recordingObserver) MirrorChanged(c models.MirrorChange) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.changes = append(o.changes, c)
}

func (o *recordingObserver) Warning(w models.Warning) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.warnings = append(o.warnings, w)
}

func (o *recordingObserver) statuses() []models.SyncStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.SyncStatus, 0, len(o.states))
	for _, st := range o.states {
		if len(out) == 0 || out[len(out)-1] != st.Status {
			out = append(out, st.Status)
		}
	}
	return out
}

func (o *recordingObserver) warningKinds() []models.WarningKind {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.WarningKind, 0, len(o.warnings))
	for _, w := range o.warnings {
		out = append(out, w.Kind)
	}
	return out
}

// recordingWriter is a SnapshotWriter that keeps the requested payloads.
type recordingWriter struct {
	mu       sync.Mutex
	requests []store.Payload
	now      []store.Payload
	nowErr   error
}

func (w *recordingWriter) Request(p store.Payload) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p.Objects = models.CloneObjects(p.Objects)
	w.requests = append(w.requests, p)
}

func (w *recordingWriter) WriteNow(_ context.Context, p store.Payload) (models.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.nowErr != nil {
		return models.Snapshot{}, w.nowErr
	}
	w.now = append(w.now, p)
	return models.Snapshot{SchemaVersion: models.SnapshotSchemaVersion, WorldObjects: models.CloneObjects(p.Objects)}, nil
}

func (w *recordingWriter) requested() []store.Payload {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]store.Payload(nil), w.requests...)
}

// countingRecheck counts recheck requests.
type countingRecheck struct {
	n atomic.Int64
}

func (c *countingRecheck) RequestRecheck() {
	c.n.Add(1)
}

const (
	waitFor = 2 * time.Second
	tick    = 2 * time.Millisecond
)
