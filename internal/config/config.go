// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Steam     SteamConfig     `koanf:"steam"`
	Snapshot  SnapshotConfig  `koanf:"snapshot"`
	Recommend RecommendConfig `koanf:"recommend"`
	Neo4j     Neo4jConfig     `koanf:"neo4j"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// SteamConfig holds Steam Web API settings and the shape of a crawl.
type SteamConfig struct {
	// APIKey is the Steam Web API key. Required only when crawling.
	APIKey string `koanf:"api_key"`

	// RootUserID is the Steam id the crawl starts from.
	RootUserID string `koanf:"root_user_id"`

	// MaxDepth is the number of friend hops followed from the root.
	// Default: 1
	MaxDepth int `koanf:"max_depth"`

	// MinPlaytime drops owned games played for this many minutes or less.
	// Default: 600
	MinPlaytime int `koanf:"min_playtime"`

	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	Timeout           time.Duration `koanf:"timeout"`
	APIURL            string        `koanf:"api_url"`
	StoreURL          string        `koanf:"store_url"`
}

// SnapshotConfig holds snapshot persistence settings.
type SnapshotConfig struct {
	// Path is the BadgerDB directory holding the latest crawl.
	Path string `koanf:"path"`

	// ImportFile seeds the store from a JSON cache file when set.
	ImportFile string `koanf:"import_file"`

	// ExportFile receives the tables as a JSON cache file after each build when set.
	ExportFile string `koanf:"export_file"`

	// CrawlOnStartup crawls Steam even when a snapshot already exists.
	CrawlOnStartup bool `koanf:"crawl_on_startup"`

	// RefreshInterval rebuilds the engine periodically. Zero disables refresh.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// RecommendConfig holds the default result sizes of the recommender.
type RecommendConfig struct {
	// RootUserID overrides the propagation root. Empty means the crawl root.
	RootUserID   string `koanf:"root_user_id"`
	SimilarUsers int    `koanf:"similar_users"`
	Games        int    `koanf:"games"`
	Genres       int    `koanf:"genres"`
	MaxK         int    `koanf:"max_k"`

	// MinPlaytime filters owned-game records again at graph build time.
	// Default: 0 (the crawl already filtered)
	MinPlaytime int `koanf:"min_playtime"`
}

// Neo4jConfig holds the optional graph export target.
type Neo4jConfig struct {
	Enabled        bool   `koanf:"enabled"`
	URI            string `koanf:"uri"`
	Username       string `koanf:"username"`
	Password       string `koanf:"password"`
	Database       string `koanf:"database"`
	MaxConnections int    `koanf:"max_connections"`
	BatchSize      int    `koanf:"batch_size"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Addr returns the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// HasWildcardCORS reports whether any CORS origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// Load loads configuration from defaults, an optional YAML file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
