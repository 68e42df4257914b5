package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/service"
	"github.com/MKhiriev/worldsync/internal/utils"
	"github.com/MKhiriev/worldsync/models"
)

const maxEditBody = 1 << 20

type insertEdit struct {
	AssetPath      string                 `json:"asset_path"`
	Transform      *models.Transform      `json:"transform,omitempty"`
	CollisionShape *models.CollisionShape `json:"collision_shape,omitempty"`
}

type transformEdit struct {
	ID        string           `json:"id"`
	Transform models.Transform `json:"transform"`
}

type moveEdit struct {
	ID          string      `json:"id"`
	Translation models.Vec3 `json:"translation"`
}

type rotateEdit struct {
	ID       string      `json:"id"`
	Rotation models.Quat `json:"rotation"`
}

type scaleEdit struct {
	ID    string      `json:"id"`
	Scale models.Vec3 `json:"scale"`
}

type deleteEdit struct {
	ID string `json:"id"`
}

type collisionEdit struct {
	ID             string                 `json:"id"`
	CollisionShape *models.CollisionShape `json:"collision_shape"`
}

// rejectionResponse is written for edits the editor refused.
type rejectionResponse struct {
	Error string               `json:"error"`
	Code  models.RejectionCode `json:"code"`
}

func insertObject(ctx context.Context, e service.Editor, req insertEdit) (models.PendingOp, error) {
	transform := models.IdentityTransform()
	if req.Transform != nil {
		transform = *req.Transform
	}
	return e.InsertObject(ctx, req.AssetPath, transform, req.CollisionShape)
}

func setTransform(ctx context.Context, e service.Editor, req transformEdit) (models.PendingOp, error) {
	return e.SetTransform(ctx, req.ID, req.Transform)
}

func move(ctx context.Context, e service.Editor, req moveEdit) (models.PendingOp, error) {
	return e.Move(ctx, req.ID, req.Translation)
}

func rotate(ctx context.Context, e service.Editor, req rotateEdit) (models.PendingOp, error) {
	return e.Rotate(ctx, req.ID, req.Rotation)
}

func scale(ctx context.Context, e service.Editor, req scaleEdit) (models.PendingOp, error) {
	return e.Scale(ctx, req.ID, req.Scale)
}

func deleteObject(ctx context.Context, e service.Editor, req deleteEdit) (models.PendingOp, error) {
	return e.Delete(ctx, req.ID)
}

func setCollision(ctx context.Context, e service.Editor, req collisionEdit) (models.PendingOp, error) {
	return e.SetCollision(ctx, req.ID, req.CollisionShape)
}

// serveEdit decodes a T from the body and hands it to edit. An accepted edit
// answers 202 with the pending op; it is confirmed later through the event
// stream.
func serveEdit[T any](src StatusSource, log *logger.Logger, name string, edit func(context.Context, service.Editor, T) (models.PendingOp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req T
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEditBody)).Decode(&req); err != nil {
			utils.WriteError(w, "invalid edit body: "+err.Error(), http.StatusBadRequest)
			return
		}

		op, err := edit(r.Context(), src.Editor(), req)
		if err != nil {
			var rej *models.EditRejection
			if errors.As(err, &rej) {
				_, _ = utils.WriteJSON(w, rejectionResponse{Error: rej.Error(), Code: rej.Code}, rejectionStatus(rej.Code))
				return
			}
			log.Error().Err(err).Str("func", "statusRouter.edit").Str("edit", name).Msg("edit request failed")
			utils.WriteError(w, err.Error(), http.StatusBadGateway)
			return
		}

		log.Debug().
			Str("func", "statusRouter.edit").
			Str("edit", name).
			Str("op_id", op.ID).
			Str("target_id", op.TargetID).
			Msg("edit accepted")
		_, _ = utils.WriteJSON(w, op, http.StatusAccepted)
	}
}

func rejectionStatus(code models.RejectionCode) int {
	switch code {
	case models.RejectBlockedOutOfSync, models.RejectBlockedSyncing, models.RejectBlockedResolving, models.RejectDuplicateID:
		return http.StatusConflict
	case models.RejectObjectNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
