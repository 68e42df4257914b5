package client

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/utils"
	"github.com/MKhiriev/worldsync/models"
)

const (
	defaultResolutionsLimit = 20
	maxResolutionsLimit     = 200
)

// NewStatusRouter serves the Prometheus metrics, a JSON view of the sync
// session and the edit requests of local tools.
func NewStatusRouter(src StatusSource, log *logger.Logger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.Handler())
	router.Route("/sync", func(r chi.Router) {
		r.Get("/state", func(w http.ResponseWriter, r *http.Request) {
			_, _ = utils.WriteJSON(w, src.State(), http.StatusOK)
		})
		r.Get("/pending", func(w http.ResponseWriter, r *http.Request) {
			ops := src.Pending()
			if ops == nil {
				ops = []models.PendingOp{}
			}
			_, _ = utils.WriteJSON(w, ops, http.StatusOK)
		})
		r.Get("/resolutions", func(w http.ResponseWriter, r *http.Request) {
			limit, err := parseLimit(r.URL.Query().Get("limit"))
			if err != nil {
				utils.WriteError(w, "invalid limit", http.StatusBadRequest)
				return
			}

			records, err := src.RecentResolutions(r.Context(), limit)
			if err != nil {
				log.Error().Err(err).Str("func", "statusRouter.resolutions").Msg("reading resolution journal failed")
				utils.WriteError(w, "journal unavailable", http.StatusInternalServerError)
				return
			}
			if records == nil {
				records = []models.ResolutionRecord{}
			}
			_, _ = utils.WriteJSON(w, records, http.StatusOK)
		})

		r.Route("/edits", func(r chi.Router) {
			r.Post("/insert", serveEdit(src, log, "insert", insertObject))
			r.Post("/transform", serveEdit(src, log, "transform", setTransform))
			r.Post("/move", serveEdit(src, log, "move", move))
			r.Post("/rotate", serveEdit(src, log, "rotate", rotate))
			r.Post("/scale", serveEdit(src, log, "scale", scale))
			r.Post("/delete", serveEdit(src, log, "delete", deleteObject))
			r.Post("/collision", serveEdit(src, log, "collision", setCollision))
		})
	})

	return router
}

func parseLimit(raw string) (uint64, error) {
	if raw == "" {
		return defaultResolutionsLimit, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, strconv.ErrSyntax
	}
	return min(n, maxResolutionsLimit), nil
}
