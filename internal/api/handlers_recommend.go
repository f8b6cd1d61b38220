// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/gamegraph/internal/metrics"
	"github.com/tomtom215/gamegraph/internal/recommend"
	"github.com/tomtom215/gamegraph/internal/validation"
)

// rankingRequest is a user path parameter plus an optional size.
// A zero size selects the engine's configured default.
type rankingRequest struct {
	UserID string `query:"user_id" validate:"required,userid"`
	Size   int    `query:"size" validate:"min=0,max=1000"`
}

// parseRankingRequest reads userID and, unless param is empty, the size
// parameter named param. It writes the error response itself and returns
// false on failure.
func parseRankingRequest(w http.ResponseWriter, r *http.Request, param string) (rankingRequest, bool) {
	req := rankingRequest{UserID: chi.URLParam(r, "userID")}

	if raw := r.URL.Query().Get(param); param != "" && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondAPIError(w, r, http.StatusBadRequest, (&validation.RequestValidationError{
				Fields: []validation.FieldError{{
					Field:   param,
					Tag:     "number",
					Value:   raw,
					Message: param + " must be an integer",
				}},
			}).ToAPIError())
			return req, false
		}
		req.Size = n
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		// report the caller's parameter name rather than the shared field name
		for i := range verr.Fields {
			if verr.Fields[i].Field == "size" {
				verr.Fields[i].Field = param
			}
		}
		respondAPIError(w, r, http.StatusBadRequest, verr.ToAPIError())
		return req, false
	}
	return req, true
}

func sizeOr(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}

// respondEngineError maps engine errors to HTTP responses.
func respondEngineError(w http.ResponseWriter, r *http.Request, userID string, err error) {
	if errors.Is(err, recommend.ErrUnknownUser) {
		respondError(w, r, http.StatusNotFound, CodeUnknownUser, "User "+userID+" is not part of the graph", nil)
		return
	}
	respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to compute recommendation", err)
}

// SimilarUsers handles GET /api/v1/users/{userID}/similar?k=.
func (h *Handler) SimilarUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := parseRankingRequest(w, r, "k")
	if !ok {
		return
	}
	engine := engineFrom(r.Context())

	users, err := engine.SimilarUsers(req.UserID, sizeOr(req.Size, engine.Config().SimilarUsers))
	metrics.RecordRecommendation("similar_users", err)
	if err != nil {
		respondEngineError(w, r, req.UserID, err)
		return
	}
	respondSuccess(w, r, users, metadata(engine, start))
}

// Games handles GET /api/v1/users/{userID}/games?n=.
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := parseRankingRequest(w, r, "n")
	if !ok {
		return
	}
	engine := engineFrom(r.Context())

	games, err := engine.PlayedGames(req.UserID, sizeOr(req.Size, engine.Config().Games))
	metrics.RecordRecommendation("games", err)
	if err != nil {
		respondEngineError(w, r, req.UserID, err)
		return
	}
	respondSuccess(w, r, games, metadata(engine, start))
}

// Genres handles GET /api/v1/users/{userID}/genres?n=.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := parseRankingRequest(w, r, "n")
	if !ok {
		return
	}
	engine := engineFrom(r.Context())

	genres, err := engine.Genres(req.UserID, sizeOr(req.Size, engine.Config().Genres))
	metrics.RecordRecommendation("genres", err)
	if err != nil {
		respondEngineError(w, r, req.UserID, err)
		return
	}
	respondSuccess(w, r, genres, metadata(engine, start))
}

// Recommendations handles GET /api/v1/users/{userID}/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := parseRankingRequest(w, r, "")
	if !ok {
		return
	}
	engine := engineFrom(r.Context())

	report, err := engine.Report(req.UserID)
	metrics.RecordRecommendation("report", err)
	if err != nil {
		respondEngineError(w, r, req.UserID, err)
		return
	}
	respondSuccess(w, r, report, metadata(engine, start))
}
