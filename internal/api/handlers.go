// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/gamegraph/internal/models"
	"github.com/tomtom215/gamegraph/internal/recommend"
)

// Handler serves API requests from the engine currently published in holder.
type Handler struct {
	holder    *recommend.Holder
	startTime time.Time
}

// NewHandler creates a Handler reading engines from holder.
func NewHandler(holder *recommend.Holder) *Handler {
	return &Handler{holder: holder, startTime: time.Now()}
}

type engineKey struct{}

// requireEngine pins the current engine for the request or answers 503.
func (h *Handler) requireEngine(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		engine := h.holder.Engine()
		if engine == nil {
			w.Header().Set("Retry-After", "5")
			respondError(w, r, http.StatusServiceUnavailable, CodeNotReady, "Recommendation graph is still being built", nil)
			return
		}
		ctx := context.WithValue(r.Context(), engineKey{}, engine)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func engineFrom(ctx context.Context) *recommend.Engine {
	engine, _ := ctx.Value(engineKey{}).(*recommend.Engine)
	return engine
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status  string    `json:"status"`
	Ready   bool      `json:"ready"`
	Uptime  float64   `json:"uptime_seconds"`
	BuiltAt time.Time `json:"built_at,omitempty"`
	Root    string    `json:"root,omitempty"`
	Users   int       `json:"users,omitempty"`
	Games   int       `json:"games,omitempty"`
	Edges   int       `json:"edges,omitempty"`
}

// Live reports that the process is serving.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, HealthStatus{
		Status: "alive",
		Ready:  h.holder.Ready(),
		Uptime: time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// Ready answers 200 once an engine is published and 503 before.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	engine := h.holder.Engine()
	if engine == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeNotReady, "Recommendation graph is still being built", nil)
		return
	}
	stats := engine.Stats()
	respondSuccess(w, r, HealthStatus{
		Status:  "ready",
		Ready:   true,
		Uptime:  time.Since(h.startTime).Seconds(),
		BuiltAt: engine.BuiltAt().UTC(),
		Root:    engine.Root(),
		Users:   stats.Users,
		Games:   stats.Games,
		Edges:   stats.Edges,
	}, models.Metadata{GraphRoot: engine.Root()})
}

// GraphStats returns the counters of the served graph.
func (h *Handler) GraphStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	engine := engineFrom(r.Context())
	respondSuccess(w, r, engine.Stats(), metadata(engine, start))
}

func metadata(engine *recommend.Engine, start time.Time) models.Metadata {
	return models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		GraphRoot:   engine.Root(),
	}
}
