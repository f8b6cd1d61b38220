// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package recommend

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamegraph/internal/graph"
	"github.com/tomtom215/gamegraph/internal/interest"
	"github.com/tomtom215/gamegraph/internal/models"
)

// Engine answers recommendation queries over one snapshot of the input tables.
// It is immutable after NewEngine returns and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	tables *models.Tables
	index  *interest.Index
	graph  *graph.Graph
	root   models.UserID

	stats   models.GraphStats
	builtAt time.Time
}

// NewEngine builds the interest graph for tables and propagates profiles from
// the configured root, then from every user the root cannot reach.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(tables *models.Tables, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if tables == nil {
		return nil, errors.New("tables are required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	root := tables.RootUser()
	if cfg.RootUserID != "" {
		if !tables.HasUser(cfg.RootUserID) {
			return nil, fmt.Errorf("root: %w: %s", ErrUnknownUser, cfg.RootUserID)
		}
		root = cfg.RootUserID
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		tables: tables,
		index:  interest.New(tables.Details),
		root:   root,
	}

	start := time.Now()
	e.graph = graph.Build(tables, e.index, graph.WithMinPlaytime(cfg.MinPlaytime))
	buildTime := time.Since(start)

	start = time.Now()
	prop, err := graph.PropagateAll(e.graph, root)
	if err != nil {
		return nil, fmt.Errorf("propagate: %w", err)
	}
	propTime := time.Since(start)

	gs := e.graph.Stats()
	e.stats = models.GraphStats{
		Users:         gs.Users,
		Games:         gs.Games,
		Edges:         gs.Edges,
		Root:          root,
		Visited:       prop.Visited,
		Aggregated:    prop.Aggregated,
		BuildMS:       buildTime.Milliseconds(),
		PropagationMS: propTime.Milliseconds(),
	}
	e.builtAt = time.Now()

	e.logger.Info().
		Str("root", root).
		Int("users", gs.Users).
		Int("games", gs.Games).
		Int("edges", gs.Edges).
		Int("dangling_friends", gs.DanglingFriends).
		Int("skipped_records", gs.SkippedRecords).
		Int("visited", prop.Visited).
		Dur("build_time", buildTime).
		Dur("propagation_time", propTime).
		Msg("Interest graph built")

	return e, nil
}

// Config returns the engine configuration. Callers must not modify it.
func (e *Engine) Config() *Config { return e.config }

// Root returns the user propagation started from.
func (e *Engine) Root() models.UserID { return e.root }

// Graph returns the propagated graph. Callers must treat it as read-only.
func (e *Engine) Graph() *graph.Graph { return e.graph }

// Tables returns the tables the engine was built from.
func (e *Engine) Tables() *models.Tables { return e.tables }

// Index returns the interest index.
func (e *Engine) Index() *interest.Index { return e.index }

// BuiltAt returns the time the engine finished building.
func (e *Engine) BuiltAt() time.Time { return e.builtAt }

// Stats returns graph and propagation counters.
func (e *Engine) Stats() models.GraphStats { return e.stats }

// HasUser reports whether id is part of the graph.
func (e *Engine) HasUser(id models.UserID) bool {
	_, ok := e.graph.User(id)
	return ok
}

// Profile returns a copy of a user's propagated interest profile.
func (e *Engine) Profile(id models.UserID) (graph.Profile, error) {
	p, ok := e.graph.Profile(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, id)
	}
	return p.Clone(), nil
}

// SimilarUsers returns up to k users ranked by similarity to id.
func (e *Engine) SimilarUsers(id models.UserID, k int) ([]models.SimilarUser, error) {
	return MostSimilarUsers(e.graph, id, e.config.clamp(k))
}

// PlayedGames returns up to n of a user's games ordered by playtime, with names.
func (e *Engine) PlayedGames(id models.UserID, n int) ([]models.RecommendedGame, error) {
	if !e.HasUser(id) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, id)
	}

	records := e.ownedGames(id)
	ranked := MostPlayedGames(records, e.config.clamp(n))
	out := make([]models.RecommendedGame, len(ranked))
	for i, r := range ranked {
		out[i] = models.RecommendedGame{
			GameID:          r.GameID,
			Name:            e.index.Name(r.GameID),
			PlaytimeMinutes: r.PlaytimeMinutes,
		}
	}
	return out, nil
}

// Genres returns up to n labels of a user's profile ordered by weight.
func (e *Engine) Genres(id models.UserID, n int) ([]models.RecommendedGenre, error) {
	p, ok := e.graph.Profile(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, id)
	}
	return TopGenres(p, e.config.clamp(n)), nil
}

// Report answers the three questions for one user using the default sizes:
// the most similar users, the most played games of the best match, and the
// user's top genres.
func (e *Engine) Report(id models.UserID) (*models.Report, error) {
	similar, err := e.SimilarUsers(id, e.config.SimilarUsers)
	if err != nil {
		return nil, err
	}
	genres, err := e.Genres(id, e.config.Genres)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		UserID:       id,
		SimilarUsers: similar,
		Games:        []models.RecommendedGame{},
		Genres:       genres,
	}
	if len(similar) > 0 {
		report.BestMatch = similar[0].UserID
		games, err := e.PlayedGames(report.BestMatch, e.config.Games)
		if err != nil {
			return nil, err
		}
		report.Games = games
	}
	return report, nil
}

// ownedGames returns the records that produced game edges for id.
func (e *Engine) ownedGames(id models.UserID) []models.OwnedGame {
	all := e.tables.OwnedGames[id]
	if e.config.MinPlaytime <= 0 {
		return all
	}
	kept := make([]models.OwnedGame, 0, len(all))
	for _, r := range all {
		if r.PlaytimeMinutes > e.config.MinPlaytime {
			kept = append(kept, r)
		}
	}
	return kept
}
