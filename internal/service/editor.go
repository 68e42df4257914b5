package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/worldsync/internal/adapter"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/metrics"
	"github.com/MKhiriev/worldsync/internal/utils"
	"github.com/MKhiriev/worldsync/internal/validators"
	"github.com/MKhiriev/worldsync/models"
)

type editor struct {
	remote    adapter.RemoteStore
	tracker   *Tracker
	mirror    MirrorView
	state     *StateMachine
	validator validators.Validator
	ids       utils.IDGenerator
	logger    *logger.Logger
}

// NewEditor returns the edit request boundary.
func NewEditor(
	remote adapter.RemoteStore,
	tracker *Tracker,
	mirror MirrorView,
	state *StateMachine,
	validator validators.Validator,
	ids utils.IDGenerator,
	log *logger.Logger,
) Editor {
	return &editor{
		remote:    remote,
		tracker:   tracker,
		mirror:    mirror,
		state:     state,
		validator: validator,
		ids:       ids,
		logger:    log,
	}
}

func (e *editor) InsertObject(ctx context.Context, assetPath string, transform models.Transform, shape *models.CollisionShape) (models.PendingOp, error) {
	if err := e.state.Gate(models.OpInsert); err != nil {
		return e.reject(err)
	}

	path, err := validators.NormalizeAssetPath(assetPath)
	if err != nil {
		return e.reject(rejection(models.OpInsert, err))
	}
	obj := models.WorldObject{
		ID:             e.ids.Generate(),
		AssetPath:      path,
		Transform:      transform,
		CollisionShape: shape.Clone(),
	}
	if err = e.validator.Validate(ctx, obj); err != nil {
		return e.reject(rejection(models.OpInsert, err))
	}
	if _, exists := e.mirror.Lookup(obj.ID); exists {
		return e.reject(models.Reject(models.RejectDuplicateID, models.OpInsert, obj.ID))
	}

	op := e.tracker.Register(models.PendingOp{Kind: models.OpInsert, TargetID: obj.ID, Expected: &obj})
	return e.send(op, e.remote.Insert(ctx, obj))
}

func (e *editor) SetTransform(ctx context.Context, id string, transform models.Transform) (models.PendingOp, error) {
	return e.updateTransform(ctx, id, func(models.Transform) models.Transform { return transform })
}

func (e *editor) Move(ctx context.Context, id string, translation models.Vec3) (models.PendingOp, error) {
	return e.updateTransform(ctx, id, func(t models.Transform) models.Transform {
		t.Translation = translation
		return t
	})
}

func (e *editor) Rotate(ctx context.Context, id string, rotation models.Quat) (models.PendingOp, error) {
	return e.updateTransform(ctx, id, func(t models.Transform) models.Transform {
		t.Rotation = rotation
		return t
	})
}

func (e *editor) Scale(ctx context.Context, id string, scale models.Vec3) (models.PendingOp, error) {
	return e.updateTransform(ctx, id, func(t models.Transform) models.Transform {
		t.Scale = scale
		return t
	})
}

func (e *editor) Delete(ctx context.Context, id string) (models.PendingOp, error) {
	if err := e.state.Gate(models.OpDelete); err != nil {
		return e.reject(err)
	}
	if _, err := e.current(models.OpDelete, id); err != nil {
		return e.reject(err)
	}

	op := e.tracker.Register(models.PendingOp{Kind: models.OpDelete, TargetID: id})
	return e.send(op, e.remote.Delete(ctx, id))
}

func (e *editor) SetCollision(ctx context.Context, id string, shape *models.CollisionShape) (models.PendingOp, error) {
	if err := e.state.Gate(models.OpSetCollision); err != nil {
		return e.reject(err)
	}
	if err := e.validator.Validate(ctx, models.SetCollisionRequest{ID: id, CollisionShape: shape}); err != nil {
		return e.reject(rejection(models.OpSetCollision, err))
	}
	row, err := e.current(models.OpSetCollision, id)
	if err != nil {
		return e.reject(err)
	}

	row.CollisionShape = shape.Clone()
	op := e.tracker.Register(models.PendingOp{Kind: models.OpSetCollision, TargetID: id, Expected: &row})
	return e.send(op, e.remote.SetCollision(ctx, id, shape))
}

func (e *editor) updateTransform(ctx context.Context, id string, change func(models.Transform) models.Transform) (models.PendingOp, error) {
	if err := e.state.Gate(models.OpUpdate); err != nil {
		return e.reject(err)
	}
	row, err := e.current(models.OpUpdate, id)
	if err != nil {
		return e.reject(err)
	}

	row.Transform = change(row.Transform)
	if err = e.validator.Validate(ctx, models.SetTransformRequest{ID: id, Transform: row.Transform}); err != nil {
		return e.reject(rejection(models.OpUpdate, err))
	}

	op := e.tracker.Register(models.PendingOp{Kind: models.OpUpdate, TargetID: id, Expected: &row})
	return e.send(op, e.remote.SetTransform(ctx, id, row.Transform))
}

// current returns the row a follow-up edit on id builds upon: the expected
// post-state of a live op, or the mirrored row.
func (e *editor) current(op models.OpKind, id string) (models.WorldObject, error) {
	if expected, live := e.tracker.Expected(id); live {
		if expected == nil {
			return models.WorldObject{}, models.Reject(models.RejectObjectNotFound, op, "delete pending for "+id)
		}
		return *expected, nil
	}
	row, ok := e.mirror.Lookup(id)
	if !ok {
		return models.WorldObject{}, models.Reject(models.RejectObjectNotFound, op, id)
	}
	return row, nil
}

// send withdraws op when its request could not be delivered.
func (e *editor) send(op models.PendingOp, err error) (models.PendingOp, error) {
	if err != nil {
		e.tracker.Cancel(op.ID)
		e.logger.Err(err).
			Str("func", "editor.send").
			Str("op_id", op.ID).
			Str("kind", op.Kind.String()).
			Str("target_id", op.TargetID).
			Msg("mutation request failed")
		return models.PendingOp{}, fmt.Errorf("send %s: %w", op.Kind, err)
	}

	e.logger.Debug().
		Str("func", "editor.send").
		Str("op_id", op.ID).
		Str("kind", op.Kind.String()).
		Str("target_id", op.TargetID).
		Msg("mutation sent")
	return op, nil
}

func (e *editor) reject(err error) (models.PendingOp, error) {
	var rej *models.EditRejection
	if errors.As(err, &rej) {
		metrics.EditRejectionsTotal.WithLabelValues(string(rej.Code)).Inc()
	}
	return models.PendingOp{}, err
}

// rejection maps a validation error to its rejection code.
func rejection(op models.OpKind, err error) *models.EditRejection {
	switch {
	case errors.Is(err, validators.ErrInvalidAssetPath):
		return models.Reject(models.RejectInvalidAssetPath, op, err.Error())
	case errors.Is(err, validators.ErrInvalidTransform):
		return models.Reject(models.RejectInvalidTransform, op, err.Error())
	case errors.Is(err, validators.ErrInvalidCollisionShape):
		return models.Reject(models.RejectInvalidCollisionShape, op, err.Error())
	case errors.Is(err, validators.ErrDuplicateID):
		return models.Reject(models.RejectDuplicateID, op, err.Error())
	default:
		return models.Reject(models.RejectObjectNotFound, op, err.Error())
	}
}
