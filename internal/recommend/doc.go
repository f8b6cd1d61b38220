// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

// Package recommend ranks users, games and genres over a propagated interest graph.
//
// # Rankings
//
// Three rankings answer the questions a user asks about their friend network:
//
//   - MostSimilarUsers: users whose propagated profile is closest to the
//     user's own, by cosine similarity. Users without owned games are skipped.
//   - MostPlayedGames: ownership records ordered by playtime.
//   - TopGenres: interest labels of a profile ordered by weight.
//
// Every ranking is a stable descending sort truncated to the requested size.
// Equal scores keep their input order, so results are reproducible for the
// same tables. A non-positive size yields an empty result.
//
// # Engine
//
// Engine bundles the frozen tables, the interest index and the propagated
// graph. It is built once per snapshot and never mutated afterwards, so any
// number of goroutines may query it. Rebuilding means constructing a new
// Engine and swapping the pointer that readers use.
//
// # Usage
//
//	engine, err := recommend.NewEngine(tables, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	report, err := engine.Report(userID)
//	if errors.Is(err, recommend.ErrUnknownUser) {
//	    // 404
//	}
package recommend
