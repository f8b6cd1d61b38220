// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

/*
Package config provides centralized configuration management for Gamegraph.

Configuration is loaded with Koanf v2 from three layers, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, or config.yaml in the working directory)
 3. Environment variables, mapped explicitly to config paths

Unknown environment variables are ignored, so the process environment cannot
leak into the configuration.

# Sections

  - SteamConfig: Steam Web API access and crawl shape (STEAM_*)
  - SnapshotConfig: BadgerDB snapshot store and JSON import/export (SNAPSHOT_*)
  - RecommendConfig: default result sizes and propagation root (RECOMMEND_*)
  - Neo4jConfig: optional graph export (NEO4J_*)
  - ServerConfig: HTTP listener (HTTP_*)
  - SecurityConfig: CORS and rate limiting
  - LoggingConfig: zerolog level, format and caller (LOG_*)

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("invalid configuration")
	}

Validation errors name the environment variable to fix, for example
"STEAM_MAX_DEPTH must be between 0 and 3".
*/
package config
