package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/worlddb"
	"github.com/MKhiriev/worldsync/models"
)

func testObject(id string) models.WorldObject {
	return models.WorldObject{ID: id, AssetPath: "models/" + id + ".gltf", Transform: models.IdentityTransform()}
}

func TestMemoryRemoteStore_StreamsCommits(t *testing.T) {
	world := worlddb.New(logger.Nop())
	require.NoError(t, world.Insert(testObject("a")))

	store := NewMemoryRemoteStore(world, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := store.Subscribe(ctx)
	require.NoError(t, err)

	initial := next(t, ch)
	require.Equal(t, models.MessageInitialRows, initial.Kind)
	require.Len(t, initial.Rows, 1)

	require.NoError(t, store.Insert(ctx, testObject("b")))
	msg := next(t, ch)
	assert.Equal(t, models.MessageRowEvent, msg.Kind)
	assert.Equal(t, models.RowInserted, msg.Event.Kind)
	assert.Equal(t, "b", msg.Event.ID)

	moved := models.IdentityTransform()
	moved.Translation.X = 1
	require.NoError(t, store.SetTransform(ctx, "b", moved))
	require.NoError(t, store.SetCollision(ctx, "b", models.Ball(1)))
	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.ReplaceAll(ctx, nil))

	kinds := []models.RowEventKind{}
	for range 4 {
		kinds = append(kinds, next(t, ch).Event.Kind)
	}
	assert.Equal(t, []models.RowEventKind{models.RowUpdated, models.RowUpdated, models.RowDeleted, models.RowDeleted}, kinds)
}

func TestMemoryRemoteStore_MapsErrors(t *testing.T) {
	world := worlddb.New(logger.Nop())
	store := NewMemoryRemoteStore(world, logger.Nop())
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testObject("a")))

	assert.ErrorIs(t, store.Insert(ctx, testObject("a")), ErrConflict)
	assert.ErrorIs(t, store.Delete(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, store.SetTransform(ctx, "a", models.Transform{}), ErrBadRequest)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, store.Delete(canceled, "a"), context.Canceled)
	_, err := store.Subscribe(canceled)
	assert.ErrorIs(t, err, context.Canceled)
}
