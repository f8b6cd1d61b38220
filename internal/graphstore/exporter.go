// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package graphstore

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamegraph/internal/graph"
	"github.com/tomtom215/gamegraph/internal/interest"
	"github.com/tomtom215/gamegraph/internal/metrics"
	"github.com/tomtom215/gamegraph/internal/models"
)

// DefaultBatchSize is the number of rows sent per UNWIND statement.
const DefaultBatchSize = 500

var schemaStatements = []string{
	"CREATE CONSTRAINT gamegraph_user_id IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE",
	"CREATE CONSTRAINT gamegraph_game_appid IF NOT EXISTS FOR (g:Game) REQUIRE g.appid IS UNIQUE",
}

const (
	mergeUsers = "UNWIND $rows AS row " +
		"MERGE (u:User {id: row.id}) " +
		"SET u.root = row.root, u.labels = row.labels, u.weights = row.weights"

	mergeGames = "UNWIND $rows AS row " +
		"MERGE (g:Game {appid: row.appid}) " +
		"SET g.name = row.name, g.owners = row.owners, g.labels = row.labels, g.weights = row.weights"

	mergeOwns = "UNWIND $rows AS row " +
		"MATCH (u:User {id: row.user}) " +
		"MATCH (g:Game {appid: row.appid}) " +
		"MERGE (u)-[r:OWNS]->(g) " +
		"SET r.playtime = row.playtime"

	mergeFriends = "UNWIND $rows AS row " +
		"MATCH (a:User {id: row.from}) " +
		"MATCH (b:User {id: row.to}) " +
		"MERGE (a)-[:FRIEND]->(b)"

	countQuery = "MATCH (u:User) WITH count(u) AS users " +
		"MATCH (g:Game) RETURN users, count(g) AS games"
)

// Source is the propagated data an export reads. *recommend.Engine implements it.
type Source interface {
	Graph() *graph.Graph
	Index() *interest.Index
	Tables() *models.Tables
	Root() models.UserID
}

// ExportStats counts exported records by kind.
type ExportStats struct {
	Users    int           `json:"users"`
	Games    int           `json:"games"`
	Owns     int           `json:"owns"`
	Friends  int           `json:"friends"`
	Duration time.Duration `json:"duration"`
}

func (s ExportStats) counts() map[string]int {
	return map[string]int{
		"user":   s.Users,
		"game":   s.Games,
		"owns":   s.Owns,
		"friend": s.Friends,
	}
}

// Exporter writes the interest graph with idempotent MERGE statements.
type Exporter struct {
	client    Client
	batchSize int
	logger    zerolog.Logger
}

// NewExporter creates an exporter. batchSize <= 0 uses DefaultBatchSize.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewExporter(client Client, batchSize int, logger zerolog.Logger) *Exporter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Exporter{
		client:    client,
		batchSize: batchSize,
		logger:    logger.With().Str("component", "graphstore").Logger(),
	}
}

// Export writes nodes first, then relationships, so every MATCH finds its endpoints.
func (e *Exporter) Export(ctx context.Context, src Source) (stats ExportStats, err error) {
	start := time.Now()
	defer func() {
		stats.Duration = time.Since(start)
		metrics.RecordExport(stats.Duration, stats.counts(), err)
	}()

	if err := e.client.VerifyConnectivity(ctx); err != nil {
		return stats, fmt.Errorf("graph database unreachable: %w", err)
	}

	for _, stmt := range schemaStatements {
		if _, err := e.client.ExecuteWrite(ctx, stmt, nil); err != nil {
			return stats, fmt.Errorf("ensure schema: %w", err)
		}
	}

	g := src.Graph()
	users, owns, friends := e.userRows(src)
	games := e.gameRows(g, src.Index())

	steps := []struct {
		name  string
		query string
		rows  []any
		count *int
	}{
		{"users", mergeUsers, users, &stats.Users},
		{"games", mergeGames, games, &stats.Games},
		{"owns", mergeOwns, owns, &stats.Owns},
		{"friends", mergeFriends, friends, &stats.Friends},
	}
	for _, step := range steps {
		n, err := e.writeBatches(ctx, step.query, step.rows)
		*step.count = n
		if err != nil {
			return stats, fmt.Errorf("export %s: %w", step.name, err)
		}
	}

	e.logger.Info().
		Int("users", stats.Users).
		Int("games", stats.Games).
		Int("owns", stats.Owns).
		Int("friends", stats.Friends).
		Dur("duration", time.Since(start)).
		Msg("Graph exported")
	return stats, nil
}

// Counts reads back the number of exported users and games.
func (e *Exporter) Counts(ctx context.Context) (users, games int64, err error) {
	res, err := e.client.ExecuteRead(ctx, countQuery, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("count nodes: %w", err)
	}
	if len(res.Records) == 0 {
		return 0, 0, nil
	}
	rec := res.Records[0]
	users, _ = rec["users"].(int64)
	games, _ = rec["games"].(int64)
	return users, games, nil
}

func (e *Exporter) writeBatches(ctx context.Context, query string, rows []any) (int, error) {
	written := 0
	for start := 0; start < len(rows); start += e.batchSize {
		end := start + e.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if _, err := e.client.ExecuteWrite(ctx, query, map[string]any{"rows": rows[start:end]}); err != nil {
			return written, err
		}
		written += end - start
	}
	return written, nil
}

func (e *Exporter) userRows(src Source) (users, owns, friends []any) {
	g := src.Graph()
	tables := src.Tables()
	root := src.Root()

	for _, uid := range g.Users() {
		p, _ := g.Profile(uid)
		users = append(users, map[string]any{
			"id":      uid,
			"root":    uid == root,
			"labels":  p.Labels(),
			"weights": weights(p),
		})

		playtime := make(map[models.GameID]int, len(tables.OwnedGames[uid]))
		for _, rec := range tables.OwnedGames[uid] {
			playtime[rec.GameID] = rec.PlaytimeMinutes
		}
		for _, gid := range g.OwnedGames(uid) {
			owns = append(owns, map[string]any{
				"user":     uid,
				"appid":    gid,
				"playtime": playtime[gid],
			})
		}
		for _, fid := range g.Friends(uid) {
			friends = append(friends, map[string]any{"from": uid, "to": fid})
		}
	}
	return users, owns, friends
}

// gameRows lists every linked game once, in first-owner order.
func (e *Exporter) gameRows(g *graph.Graph, idx *interest.Index) []any {
	var rows []any
	seen := make(map[models.GameID]struct{})
	for _, uid := range g.Users() {
		for _, gid := range g.OwnedGames(uid) {
			if _, dup := seen[gid]; dup {
				continue
			}
			seen[gid] = struct{}{}

			nid, _ := g.Game(gid)
			n := g.Node(nid)
			rows = append(rows, map[string]any{
				"appid":   gid,
				"name":    idx.Name(gid),
				"owners":  n.OwnerCount,
				"labels":  n.Profile.Labels(),
				"weights": weights(n.Profile),
			})
		}
	}
	return rows
}

func weights(p graph.Profile) []float64 {
	w := make([]float64, len(p))
	for i, s := range p {
		w[i] = s.Weight
	}
	return w
}
