package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/worldsync/internal/fingerprint"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/models"
)

// recordingStore is a SnapshotStore that records every written set and can be
// told to fail a number of times.
type recordingStore struct {
	mu     sync.Mutex
	writes [][]models.WorldObject
	fail   int
}

func (r *recordingStore) Write(_ context.Context, objects []models.WorldObject) (models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail > 0 {
		r.fail--
		return models.Snapshot{}, errors.New("disk full")
	}
	r.writes = append(r.writes, models.CloneObjects(objects))
	return models.Snapshot{SchemaVersion: models.SnapshotSchemaVersion, WorldObjects: objects}, nil
}

func (r *recordingStore) Read(context.Context) (models.Snapshot, error) {
	return models.Snapshot{}, ErrSnapshotNotFound
}

func (r *recordingStore) Path() string { return "memory" }

func (r *recordingStore) written() [][]models.WorldObject {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]models.WorldObject(nil), r.writes...)
}

// gatedStore holds its first write until released and refuses to write
// under a cancelled context.
type gatedStore struct {
	recordingStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedStore() *gatedStore {
	return &gatedStore{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedStore) Write(ctx context.Context, objects []models.WorldObject) (models.Snapshot, error) {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, err
	}
	return g.recordingStore.Write(ctx, objects)
}

func payload(version uint64, ids ...string) Payload {
	objects := make([]models.WorldObject, 0, len(ids))
	for _, id := range ids {
		objects = append(objects, models.WorldObject{ID: id, AssetPath: "a.gltf", Transform: models.IdentityTransform()})
	}
	return Payload{Version: version, Objects: objects}
}

type results struct {
	mu  sync.Mutex
	all []models.WriteResult
}

func (r *results) add(res models.WriteResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, res)
}

func (r *results) get() []models.WriteResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.WriteResult(nil), r.all...)
}

func startWriter(t *testing.T, store SnapshotStore, quiet time.Duration) (*DebouncedWriter, *results, context.CancelFunc, <-chan struct{}) {
	t.Helper()
	res := &results{}
	w := NewDebouncedWriter(store, quiet, res.add, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return w, res, cancel, done
}

func TestDebouncedWriter_CoalescesBurst(t *testing.T) {
	store := &recordingStore{}
	w, res, _, _ := startWriter(t, store, 50*time.Millisecond)

	w.Request(payload(1, "a"))
	w.Request(payload(2, "a", "b"))
	w.Request(payload(3, "a", "b", "c"))

	require.Eventually(t, func() bool { return len(res.get()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	writes := store.written()
	require.Len(t, writes, 1)
	assert.Len(t, writes[0], 3)
	assert.False(t, w.Pending())

	got := res.get()[0]
	assert.NoError(t, got.Err)
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, fingerprint.Of(payload(3, "a", "b", "c").Objects).String(), got.Fingerprint)
}

func TestDebouncedWriter_TrailingPayloadFlushedOnStop(t *testing.T) {
	store := &recordingStore{}
	w, _, cancel, done := startWriter(t, store, time.Hour)

	w.Request(payload(1, "a"))
	w.Request(payload(2, "a", "b"))
	cancel()
	<-done

	writes := store.written()
	require.Len(t, writes, 1)
	assert.Len(t, writes[0], 2)
}

func TestDebouncedWriter_StopDuringFlushKeepsPayload(t *testing.T) {
	store := newGatedStore()
	w, res, cancel, done := startWriter(t, store, time.Millisecond)

	w.Request(payload(1, "a", "b"))
	<-store.entered
	cancel()
	close(store.release)
	<-done

	writes := store.written()
	require.Len(t, writes, 1, "the last payload is written despite the stop")
	assert.Len(t, writes[0], 2)
	require.Len(t, res.get(), 1)
	assert.NoError(t, res.get()[0].Err)
}

func TestDebouncedWriter_WriteNowDuringStop(t *testing.T) {
	store := newGatedStore()
	w, _, cancel, done := startWriter(t, store, time.Hour)

	w.Request(payload(2, "a", "b"))
	type reply struct {
		snap models.Snapshot
		err  error
	}
	replies := make(chan reply, 1)
	go func() {
		snap, err := w.WriteNow(context.Background(), payload(1, "a"))
		replies <- reply{snap, err}
	}()

	<-store.entered
	cancel()
	close(store.release)
	<-done

	rep := <-replies
	require.NoError(t, rep.err)
	writes := store.written()
	require.Len(t, writes, 2)
	assert.Len(t, writes[0], 1)
	assert.Len(t, writes[1], 2, "the newer queued payload is flushed on stop")
}

func TestDebouncedWriter_OlderPayloadNeverWins(t *testing.T) {
	store := &recordingStore{}
	w, res, _, _ := startWriter(t, store, 20*time.Millisecond)

	w.Request(payload(5, "a", "b"))
	w.Request(payload(4, "a"))

	require.Eventually(t, func() bool { return len(res.get()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Len(t, store.written()[0], 2)

	w.Request(payload(3, "x"))
	time.Sleep(60 * time.Millisecond)
	assert.Len(t, store.written(), 1, "a payload older than the last write is dropped")
}

func TestDebouncedWriter_RetriesOnce(t *testing.T) {
	store := &recordingStore{fail: 1}
	w, res, _, _ := startWriter(t, store, time.Millisecond)

	w.Request(payload(1, "a"))

	require.Eventually(t, func() bool { return len(res.get()) == 1 }, time.Second, 5*time.Millisecond)
	got := res.get()[0]
	assert.NoError(t, got.Err)
	assert.Equal(t, 2, got.Attempts)
	assert.Len(t, store.written(), 1)
}

func TestDebouncedWriter_ReportsRepeatedFailure(t *testing.T) {
	store := &recordingStore{fail: 2}
	w, res, _, _ := startWriter(t, store, time.Millisecond)

	w.Request(payload(1, "a"))

	require.Eventually(t, func() bool { return len(res.get()) == 1 }, time.Second, 5*time.Millisecond)
	got := res.get()[0]
	assert.ErrorIs(t, got.Err, ErrSnapshotWrite)
	assert.Equal(t, 2, got.Attempts)
	assert.Empty(t, store.written())

	// the writer keeps serving requests after a failure
	w.Request(payload(2, "a"))
	require.Eventually(t, func() bool { return len(store.written()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestDebouncedWriter_WriteNowSupersedesPending(t *testing.T) {
	store := &recordingStore{}
	w, _, _, _ := startWriter(t, store, time.Hour)

	w.Request(payload(1, "a"))
	snap, err := w.WriteNow(context.Background(), payload(2, "a", "b"))
	require.NoError(t, err)
	assert.Len(t, snap.WorldObjects, 2)
	assert.False(t, w.Pending())

	writes := store.written()
	require.Len(t, writes, 1)
	assert.Len(t, writes[0], 2)
}

func TestDebouncedWriter_WriteNowAfterStop(t *testing.T) {
	store := &recordingStore{}
	w, _, cancel, done := startWriter(t, store, time.Hour)
	cancel()
	<-done

	_, err := w.WriteNow(context.Background(), payload(1, "a"))
	assert.ErrorIs(t, err, ErrWriterClosed)
}
