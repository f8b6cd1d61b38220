// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/gamegraph/config.yaml",
	"/etc/gamegraph/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Steam: SteamConfig{
			APIKey:            "",
			RootUserID:        "",
			MaxDepth:          1,
			MinPlaytime:       600,
			RequestsPerSecond: 1,
			Burst:             1,
			Timeout:           10 * time.Second,
			APIURL:            "https://api.steampowered.com",
			StoreURL:          "https://store.steampowered.com",
		},
		Snapshot: SnapshotConfig{
			Path:            "/data/snapshot",
			ImportFile:      "",
			ExportFile:      "",
			CrawlOnStartup:  false,
			RefreshInterval: 0,
		},
		Recommend: RecommendConfig{
			RootUserID:   "",
			SimilarUsers: 3,
			Games:        5,
			Genres:       5,
			MaxK:         100,
			MinPlaytime:  0,
		},
		Neo4j: Neo4jConfig{
			Enabled:        false,
			URI:            "bolt://localhost:7687",
			Username:       "neo4j",
			Password:       "",
			Database:       "neo4j",
			MaxConnections: 10,
			BatchSize:      500,
		},
		Server: ServerConfig{
			Port:            3857,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// STEAM_API_KEY -> steam.api_key, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or empty string if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while YAML lists arrive as slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	"steam_api_key":             "steam.api_key",
	"steam_root_user_id":        "steam.root_user_id",
	"steam_max_depth":           "steam.max_depth",
	"steam_min_playtime":        "steam.min_playtime",
	"steam_requests_per_second": "steam.requests_per_second",
	"steam_burst":               "steam.burst",
	"steam_timeout":             "steam.timeout",
	"steam_api_url":             "steam.api_url",
	"steam_store_url":           "steam.store_url",

	"snapshot_path":             "snapshot.path",
	"snapshot_import_file":      "snapshot.import_file",
	"snapshot_export_file":      "snapshot.export_file",
	"snapshot_crawl_on_startup": "snapshot.crawl_on_startup",
	"snapshot_refresh_interval": "snapshot.refresh_interval",

	"recommend_root_user_id":  "recommend.root_user_id",
	"recommend_similar_users": "recommend.similar_users",
	"recommend_games":         "recommend.games",
	"recommend_genres":        "recommend.genres",
	"recommend_max_k":         "recommend.max_k",
	"recommend_min_playtime":  "recommend.min_playtime",

	"neo4j_enabled":         "neo4j.enabled",
	"neo4j_uri":             "neo4j.uri",
	"neo4j_username":        "neo4j.username",
	"neo4j_password":        "neo4j.password",
	"neo4j_database":        "neo4j.database",
	"neo4j_max_connections": "neo4j.max_connections",
	"neo4j_batch_size":      "neo4j.batch_size",

	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
