// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

/*
Package models defines the data structures shared across Gamegraph.

Model Categories:

1. Input Tables (produced by the crawler, persisted by the snapshot store):
  - Tables: friend adjacency, owned games per user, game metadata
  - OwnedGame: a single (appid, playtime) ownership record
  - GameDetail: store metadata for a game (name, genres)

2. Recommendation Outputs:
  - SimilarUser, RecommendedGame, RecommendedGenre
  - Report: the three answers for one user
  - GraphStats: size and build timings of the served graph

3. API Response Models:
  - APIResponse: Standard response wrapper
  - APIError: Error details
  - Metadata: Response metadata (timestamp, query time)

The JSON shape of Tables matches the cache file written by earlier versions of the
crawler, so existing api_cache.json files can be imported unchanged.
*/
package models
