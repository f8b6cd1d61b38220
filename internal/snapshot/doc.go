// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

// Package snapshot persists crawled input tables.
//
// Store keeps the latest snapshot in BadgerDB so the server can rebuild its
// interest graph after a restart without calling the Steam Web API again. The
// per-game metadata entries double as the crawler's detail cache.
//
// ReadFile and WriteFile read and write the JSON cache file format:
//
//	{
//	  "user_friend_graph": {"<user>": ["<friend>", ...]},
//	  "user_game_mapping": {"<user>": [{"appid": 10, "playtime_forever": 720}]},
//	  "game_detail":       {"10": {"name": "...", "genres": [...]}, "20": null}
//	}
package snapshot
