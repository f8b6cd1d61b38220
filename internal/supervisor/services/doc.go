// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

// Package services provides the suture.Service implementations run by the
// supervisor tree: EngineService builds and publishes the recommendation
// engine, HTTPServerService serves the API.
package services
