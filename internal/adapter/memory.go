package adapter

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/worlddb"
	"github.com/MKhiriev/worldsync/models"
)

// memoryPollWait bounds one in-process wait so cancellation is observed.
const memoryPollWait = time.Second

type memoryRemoteStore struct {
	world      *worlddb.World
	newBackoff func() retry.Backoff
	logger     *logger.Logger
}

// NewMemoryRemoteStore returns a [RemoteStore] backed directly by world.
func NewMemoryRemoteStore(world *worlddb.World, log *logger.Logger) RemoteStore {
	return &memoryRemoteStore{world: world, logger: log}
}

func (m *memoryRemoteStore) Subscribe(ctx context.Context) (<-chan models.RemoteMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return subscribe(ctx, m, m.newBackoff, m.logger), nil
}

func (m *memoryRemoteStore) fetchRows(context.Context) ([]models.WorldObject, uint64, error) {
	rows, seq := m.world.Rows()
	return rows, seq, nil
}

func (m *memoryRemoteStore) fetchEvents(ctx context.Context, after uint64) ([]models.RowEvent, uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, memoryPollWait)
	defer cancel()

	events, next, err := m.world.Wait(ctx, after)
	return events, next, mapWorldError(err)
}

func (m *memoryRemoteStore) Insert(ctx context.Context, obj models.WorldObject) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapWorldError(m.world.Insert(obj))
}

func (m *memoryRemoteStore) SetTransform(ctx context.Context, id string, transform models.Transform) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapWorldError(m.world.SetTransform(id, transform))
}

func (m *memoryRemoteStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapWorldError(m.world.Delete(id))
}

func (m *memoryRemoteStore) SetCollision(ctx context.Context, id string, shape *models.CollisionShape) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapWorldError(m.world.SetCollision(id, shape))
}

func (m *memoryRemoteStore) ReplaceAll(ctx context.Context, objects []models.WorldObject) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapWorldError(m.world.ReplaceAll(objects))
}
