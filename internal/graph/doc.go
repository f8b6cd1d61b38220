// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

// Package graph builds the user/game interest graph and computes a weighted
// interest profile for every user.
//
// # Structure
//
// The graph is an arena of nodes addressed by NodeID. A node is either a user
// or a game (see Kind). Users point at the games they own and at their mutual
// friends; games are leaves. Every distinct game id has exactly one game node,
// shared by all of its owners.
//
// # Pipeline
//
//	idx := interest.New(tables.Details)
//	g := graph.Build(tables, idx)
//	stats, err := graph.PropagateAll(g, tables.RootUser())
//
// Build applies a playtime-derived confidence to each game node as owners are
// discovered (see Confidence). Propagation then walks users depth-first and
// aggregates each user's neighbor profiles bottom-up (see Aggregate).
//
// # Cycles
//
// Friend edges are usually bidirectional, so the walk keeps a visited set and
// marks a user before descending. A neighbor that is already visited when it
// is reached again is left out of the aggregation input. This bounds the walk
// at the cost of dropping contributions across closed cycles; results depend
// on the root the walk starts from.
//
// # Thread Safety
//
// Building and propagation are single-threaded and mutate the graph. Once
// PropagateAll returns the graph is read-only and safe for concurrent readers.
package graph
