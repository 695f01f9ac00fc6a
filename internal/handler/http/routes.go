package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Method("GET", "/metrics", h.metrics.Handler())

	if h.relay != nil {
		h.relayRoutes(router)
	}
	if h.device != nil {
		h.deviceRoutes(router)
	}

	router.MethodNotAllowed(methodNotAllowed(router))

	return router
}

func (h *Handler) relayRoutes(router chi.Router) {
	router.Get("/api/version/", h.getServerVersion)

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(middleware.Compress(5, "application/json"))

		r.Post("/api/sync/envelopes", h.submitEnvelope)
		r.Get("/api/sync/envelopes", h.pullEnvelopes)
		r.Post("/api/sync/ack", h.ackEnvelopes)
	})
}

// deviceRoutes is the local control API; it listens on loopback and has no
// authorization.
func (h *Handler) deviceRoutes(router chi.Router) {
	router.Post("/api/fetch-latest/", h.requestAllFetches)
	router.Post("/api/fetch-latest/{type}", h.requestFetch)
}
