// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

// Package main is the gamegraph command line tool.
//
// It shares configuration and the snapshot store with the server:
//
//	gamegraph crawl 76561197960435530 --depth 1   crawl Steam into the store
//	gamegraph import steam_cache.json             load a JSON cache into the store
//	gamegraph recommend 76561197960435530         print the three answers for a user
//	gamegraph export --neo4j --file out.json      mirror the graph to Neo4j or a file
//
// BadgerDB allows one process per directory, so commands touching the store
// fail while a server uses the same SNAPSHOT_PATH.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
