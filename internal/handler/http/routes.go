package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	router.Get("/version", h.getVersion)

	router.Route("/v1/{module}", func(r chi.Router) {
		r.Use(h.withModule)

		// reads, no identity required
		r.Group(func(r chi.Router) {
			r.Use(withGZip)
			r.Get("/rows", h.getRows)
			r.Get("/events", h.getEvents)
		})

		// reducers
		r.Route("/reducers", func(r chi.Router) {
			r.Use(h.auth, h.withRequestTimeout)
			r.Post("/insert_object", h.insertObject)
			r.Post("/set_transform", h.setTransform)
			r.Post("/delete_object", h.deleteObject)
			r.Post("/set_collision", h.setCollision)
			r.Post("/replace_all", h.replaceAll)
		})

		if h.devRoutes {
			r.With(h.auth).Post("/dev/wipe", h.wipe)
		}
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
