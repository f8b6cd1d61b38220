// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

// Package main is the entry point for the Gamegraph recommendation server.
//
// Gamegraph builds an interest graph from a Steam friend network, propagates
// genre interest along friendships, and answers three questions per user over
// HTTP: who plays like them, what their best match plays most, and which
// genres they are drawn to.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: settings from defaults, config.yaml and environment (Koanf v2)
//  2. Logging: zerolog, with an slog bridge for the supervisor
//  3. Snapshot store: BadgerDB holding crawled tables and the game detail cache
//  4. Steam crawler (optional, STEAM_API_KEY)
//  5. Neo4j exporter (optional, NEO4J_ENABLED)
//  6. Supervisor tree: the engine service in the data layer, the HTTP server
//     in the api layer
//
// The HTTP server starts immediately and answers 503 until the engine
// service has published its first engine.
//
// # Example Usage
//
// Serve a previously exported cache file:
//
//	export SNAPSHOT_PATH=./data
//	export SNAPSHOT_IMPORT_FILE=./steam_cache.json
//	./gamegraph-server
//
// Crawl on startup and refresh every six hours:
//
//	export STEAM_API_KEY=your-key
//	export STEAM_ROOT_USER_ID=76561197960435530
//	export SNAPSHOT_CRAWL_ON_STARTUP=true
//	export SNAPSHOT_REFRESH_INTERVAL=6h
//	./gamegraph-server
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests for SHUTDOWN_TIMEOUT before the snapshot store closes.
package main
