// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

// Package app turns a loaded config.Config into the components shared by the
// server and the command line tool: the BadgerDB snapshot store, the Steam
// client and crawler, and the optional Neo4j exporter.
//
// The config package stays free of domain imports; every conversion from
// configuration to component options happens here.
package app
