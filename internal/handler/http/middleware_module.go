package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/utils"
)

// withModule answers 404 for paths naming another database module.
func (h *Handler) withModule(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if module := chi.URLParam(r, "module"); module != h.module {
			logger.FromRequest(r).Warn().Str("requested_module", module).Msg("unknown module")
			utils.WriteError(w, ErrUnknownModule.Error(), http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRequestTimeout bounds reducer calls by the configured request timeout.
func (h *Handler) withRequestTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.requestTimeout <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
