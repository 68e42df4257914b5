package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/metrics"
	"github.com/MKhiriev/worldsync/internal/utils"
	"github.com/MKhiriev/worldsync/models"
)

// maxReducerBody bounds a reducer body. replace_all carries the whole table.
const maxReducerBody = 32 << 20

func (h *Handler) insertObject(w http.ResponseWriter, r *http.Request) {
	var req models.InsertObjectRequest
	h.serveReducer(w, r, "insert_object", &req, func() error {
		return h.world.Insert(req.Object)
	})
}

func (h *Handler) setTransform(w http.ResponseWriter, r *http.Request) {
	var req models.SetTransformRequest
	h.serveReducer(w, r, "set_transform", &req, func() error {
		return h.world.SetTransform(req.ID, req.Transform)
	})
}

func (h *Handler) deleteObject(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteObjectRequest
	h.serveReducer(w, r, "delete_object", &req, func() error {
		return h.world.Delete(req.ID)
	})
}

func (h *Handler) setCollision(w http.ResponseWriter, r *http.Request) {
	var req models.SetCollisionRequest
	h.serveReducer(w, r, "set_collision", &req, func() error {
		return h.world.SetCollision(req.ID, req.CollisionShape)
	})
}

func (h *Handler) replaceAll(w http.ResponseWriter, r *http.Request) {
	var req models.ReplaceAllRequest
	h.serveReducer(w, r, "replace_all", &req, func() error {
		return h.world.ReplaceAll(req.Objects)
	})
}

// serveReducer decodes the body into req, validates it and runs apply. req
// must be a pointer to one of the reducer request models.
func (h *Handler) serveReducer(w http.ResponseWriter, r *http.Request, reducer string, req any, apply func() error) {
	log := logger.FromRequest(r)
	ctx := r.Context()
	editorID, _ := utils.GetEditorIDFromContext(ctx)

	status := http.StatusOK
	defer func() {
		metrics.GatewayReducerCallsTotal.WithLabelValues(reducer, strconv.Itoa(status)).Inc()
	}()

	fail := func(err error) {
		status = statusFromError(err)
		log.Err(err).
			Str("reducer", reducer).
			Str("editor_id", editorID).
			Int("status", status).
			Msg("reducer call rejected")
		utils.WriteError(w, err.Error(), status)
	}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReducerBody))
	if err := decoder.Decode(req); err != nil {
		fail(fmt.Errorf("%w: %w", ErrInvalidBody, err))
		return
	}

	if err := h.validator.Validate(ctx, deref(req)); err != nil {
		fail(err)
		return
	}

	if err := ctx.Err(); err != nil {
		fail(err)
		return
	}
	if err := apply(); err != nil {
		fail(err)
		return
	}

	seq := h.world.Seq()
	log.Debug().
		Str("reducer", reducer).
		Str("editor_id", editorID).
		Uint64("seq", seq).
		Msg("reducer applied")
	utils.WriteJSON(w, models.ReducerResponse{Seq: seq}, status)
}

// deref turns a pointer to a request model into the value form the
// validator switches on.
func deref(req any) any {
	switch v := req.(type) {
	case *models.InsertObjectRequest:
		return *v
	case *models.SetTransformRequest:
		return *v
	case *models.DeleteObjectRequest:
		return *v
	case *models.SetCollisionRequest:
		return *v
	case *models.ReplaceAllRequest:
		return *v
	default:
		return req
	}
}
