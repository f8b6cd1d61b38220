// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

// Package steam acquires the three input tables from the Steam Web API.
//
// Client wraps the three endpoints the recommender needs (owned games,
// friend list, store app details). Every call waits on a token bucket and
// runs through a circuit breaker so a struggling upstream is not hammered
// during a crawl.
//
// Crawler walks the friend network breadth-first from a root user up to a
// maximum depth and assembles models.Tables. Game metadata is fetched once
// per game and cached in a DetailCache, typically the snapshot store, so
// repeated crawls only ask the store API about games not seen before.
package steam
