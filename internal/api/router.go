// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/gamegraph/internal/middleware"
)

// NewRouter builds the chi router for handler.
func NewRouter(handler *Handler, config *ChiMiddlewareConfig) http.Handler {
	mw := NewChiMiddleware(config)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(middleware.AccessLog)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, CodeMethod, "Method not allowed", nil)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)

		r.Route("/health", func(r chi.Router) {
			r.Use(mw.RateLimitHealth())
			r.Get("/live", handler.Live)
			r.Get("/ready", handler.Ready)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())
			r.Use(handler.requireEngine)

			r.Route("/users/{userID}", func(r chi.Router) {
				r.Get("/similar", handler.SimilarUsers)
				r.Get("/games", handler.Games)
				r.Get("/genres", handler.Genres)
				r.Get("/recommendations", handler.Recommendations)
			})
			r.Get("/graph/stats", handler.GraphStats)
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
