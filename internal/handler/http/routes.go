package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if h.server.TrustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(h.withTraceID, withLogging, h.withMetrics)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.health)
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit)
		r.Use(h.auth)

		r.Get("/limits", h.limits)

		r.Group(func(r chi.Router) {
			if h.server.RequestTimeout > 0 {
				r.Use(middleware.Timeout(h.server.RequestTimeout))
			}
			r.Post("/remove-bg", h.removeBackground)
			r.Post("/upscale", h.upscale)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
