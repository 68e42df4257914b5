package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/utils"
	"github.com/MKhiriev/worldsync/models"
)

func (h *Handler) getRows(w http.ResponseWriter, r *http.Request) {
	rows, seq := h.world.Rows()
	if rows == nil {
		rows = []models.WorldObject{}
	}
	utils.WriteJSON(w, models.RowsResponse{Rows: rows, Seq: seq}, http.StatusOK)
}

// getEvents answers with the events after the "after" cursor. With a positive
// "wait" the request is held until an event arrives or the wait, capped by
// the configured long-poll timeout, elapses.
func (h *Handler) getEvents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	after, wait, err := h.parseEventsQuery(r)
	if err != nil {
		log.Err(err).Msg("bad events query")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	var (
		events []models.RowEvent
		next   uint64
	)
	if wait > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), wait)
		events, next, err = h.world.Wait(ctx, after)
		cancel()
	} else {
		events, next, err = h.world.EventsSince(after)
	}
	if err != nil {
		log.Err(err).Uint64("after", after).Msg("events request failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if events == nil {
		events = []models.RowEvent{}
	}
	utils.WriteJSON(w, models.EventsResponse{Events: events, Seq: next}, http.StatusOK)
}

func (h *Handler) parseEventsQuery(r *http.Request) (uint64, time.Duration, error) {
	query := r.URL.Query()

	var after uint64
	if raw := query.Get("after"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCursor, raw)
		}
		after = v
	}

	var wait time.Duration
	if raw := query.Get("wait"); raw != "" {
		v, err := time.ParseDuration(raw)
		if err != nil || v < 0 {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidWait, raw)
		}
		wait = min(v, h.longPoll)
	}
	return after, wait, nil
}
