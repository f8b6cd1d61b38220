// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

// Package graphstore exports the propagated interest graph to a graph database.
//
// The exporter MERGEs User and Game nodes with their interest profiles and
// OWNS and FRIEND relationships, so the graph can be explored with Cypher
// after every rebuild. Client abstracts the database; the Neo4j client speaks
// Bolt and MemoryClient records statements for tests.
package graphstore

import (
	"context"
	"errors"
)

// Client defines the minimal contract the exporter needs from a graph database.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a simplified representation of a query response.
type Result struct {
	Records []Record
}

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

// Options configures a graph client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
