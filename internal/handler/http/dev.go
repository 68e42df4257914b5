package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/metrics"
	"github.com/MKhiriev/worldsync/internal/utils"
	"github.com/MKhiriev/worldsync/models"
)

// wipe deletes every row to simulate data loss on the remote side. It is
// only routed when the gateway runs with dev routes enabled.
func (h *Handler) wipe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	editorID, _ := utils.GetEditorIDFromContext(r.Context())

	deleted := h.world.Wipe()
	seq := h.world.Seq()
	metrics.GatewayReducerCallsTotal.WithLabelValues("wipe", strconv.Itoa(http.StatusOK)).Inc()

	log.Warn().
		Str("editor_id", editorID).
		Int("deleted", deleted).
		Uint64("seq", seq).
		Msg("world wiped")
	utils.WriteJSON(w, models.WipeResponse{Deleted: deleted, Seq: seq}, http.StatusOK)
}
