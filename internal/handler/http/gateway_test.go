package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/worldsync/internal/adapter"
	"github.com/MKhiriev/worldsync/internal/config"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/models"
)

// Проверяем, что HTTP-адаптер клиента и шлюз понимают друг друга.
func TestGateway_HTTPAdapterRoundTrip(t *testing.T) {
	h, world := newTestHandler(t, withIdentityKey, func(cfg *config.GatewayConfig) {
		cfg.LongPollTimeout = 100 * time.Millisecond
	})
	require.NoError(t, world.Insert(object("obj-1", 0)))

	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	remote, err := adapter.NewHTTPRemoteStore(config.ClientAdapter{
		Mode:           config.RemoteModeHTTP,
		URL:            srv.URL,
		Module:         testModule,
		IdentityKey:    testKey,
		RequestTimeout: 2 * time.Second,
	}, "editor-1", logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	stream, err := remote.Subscribe(ctx)
	require.NoError(t, err)

	next := func() models.RemoteMessage {
		t.Helper()
		select {
		case msg, ok := <-stream:
			require.True(t, ok, "stream closed")
			return msg
		case <-time.After(3 * time.Second):
			t.Fatal("no message from the gateway")
			return models.RemoteMessage{}
		}
	}

	initial := next()
	require.Equal(t, models.MessageInitialRows, initial.Kind)
	require.Len(t, initial.Rows, 1)
	assert.Equal(t, "obj-1", initial.Rows[0].ID)

	require.NoError(t, remote.Insert(ctx, object("obj-2", 2)))
	ev := next()
	require.Equal(t, models.MessageRowEvent, ev.Kind)
	assert.Equal(t, models.RowInserted, ev.Event.Kind)
	assert.Equal(t, "obj-2", ev.Event.ID)

	require.NoError(t, remote.SetCollision(ctx, "obj-2", models.Ball(0.5)))
	ev = next()
	assert.Equal(t, models.RowUpdated, ev.Event.Kind)
	require.NotNil(t, ev.Event.Row)
	assert.Equal(t, models.CollisionBall, ev.Event.Row.CollisionShape.Kind)

	require.NoError(t, remote.ReplaceAll(ctx, []models.WorldObject{object("obj-3", 0)}))
	kinds := map[string]models.RowEventKind{}
	for range 3 {
		ev = next()
		kinds[ev.Event.ID] = ev.Event.Kind
	}
	assert.Equal(t, map[string]models.RowEventKind{
		"obj-1": models.RowDeleted,
		"obj-2": models.RowDeleted,
		"obj-3": models.RowInserted,
	}, kinds)

	assert.ErrorIs(t, remote.Delete(ctx, "ghost"), adapter.ErrNotFound)
	assert.ErrorIs(t, remote.Insert(ctx, object("obj-3", 0)), adapter.ErrConflict)
}

func TestGateway_HTTPAdapterWithoutIdentity(t *testing.T) {
	h, world := newTestHandler(t, withIdentityKey)
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	remote, err := adapter.NewHTTPRemoteStore(config.ClientAdapter{
		Mode:           config.RemoteModeHTTP,
		URL:            srv.URL,
		Module:         testModule,
		RequestTimeout: time.Second,
	}, "editor-1", logger.Nop())
	require.NoError(t, err)

	err = remote.Insert(context.Background(), object("obj-1", 0))

	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Equal(t, uint64(0), world.Seq())
}
