// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Steam.MaxDepth != 1 {
		t.Errorf("Steam.MaxDepth = %d, want 1", cfg.Steam.MaxDepth)
	}
	if cfg.Steam.MinPlaytime != 600 {
		t.Errorf("Steam.MinPlaytime = %d, want 600", cfg.Steam.MinPlaytime)
	}
	if cfg.Steam.APIURL != "https://api.steampowered.com" {
		t.Errorf("Steam.APIURL = %q", cfg.Steam.APIURL)
	}

	if cfg.Recommend.SimilarUsers != 3 || cfg.Recommend.Games != 5 || cfg.Recommend.Genres != 5 {
		t.Errorf("Recommend defaults = %+v, want 3/5/5", cfg.Recommend)
	}
	if cfg.Recommend.MaxK != 100 {
		t.Errorf("Recommend.MaxK = %d, want 100", cfg.Recommend.MaxK)
	}

	if cfg.Neo4j.Enabled {
		t.Error("Neo4j.Enabled should be false by default")
	}

	if cfg.Server.Port != 3857 {
		t.Errorf("Server.Port = %d, want 3857", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"STEAM_API_KEY", "steam.api_key"},
		{"STEAM_ROOT_USER_ID", "steam.root_user_id"},
		{"STEAM_MAX_DEPTH", "steam.max_depth"},
		{"SNAPSHOT_PATH", "snapshot.path"},
		{"RECOMMEND_SIMILAR_USERS", "recommend.similar_users"},
		{"NEO4J_URI", "neo4j.uri"},
		{"HTTP_PORT", "server.port"},
		{"ENVIRONMENT", "server.environment"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},

		// Unmapped variables are skipped
		{"PATH", ""},
		{"HOME", ""},
		{"STEAM_UNKNOWN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestLoadWithKoanf_EnvOverrides verifies that env vars override defaults
func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STEAM_API_KEY", "key")
	t.Setenv("STEAM_ROOT_USER_ID", "76561197960287930")
	t.Setenv("STEAM_MAX_DEPTH", "2")
	t.Setenv("STEAM_TIMEOUT", "5s")
	t.Setenv("RECOMMEND_GAMES", "10")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Steam.APIKey != "key" {
		t.Errorf("Steam.APIKey = %q, want key", cfg.Steam.APIKey)
	}
	if cfg.Steam.MaxDepth != 2 {
		t.Errorf("Steam.MaxDepth = %d, want 2", cfg.Steam.MaxDepth)
	}
	if cfg.Steam.Timeout != 5*time.Second {
		t.Errorf("Steam.Timeout = %v, want 5s", cfg.Steam.Timeout)
	}
	if cfg.Recommend.Games != 10 {
		t.Errorf("Recommend.Games = %d, want 10", cfg.Recommend.Games)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	if err := cfg.CanCrawl(); err != nil {
		t.Errorf("CanCrawl() error = %v", err)
	}
}

// TestLoadWithKoanf_ConfigFile verifies the YAML layer and its precedence below env vars
func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "gamegraph.yaml")
	content := `
steam:
  root_user_id: "76561197960287930"
  min_playtime: 120
recommend:
  similar_users: 7
security:
  cors_origins:
    - https://app.example
server:
  port: 9000
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Steam.RootUserID != "76561197960287930" {
		t.Errorf("Steam.RootUserID = %q", cfg.Steam.RootUserID)
	}
	if cfg.Steam.MinPlaytime != 120 {
		t.Errorf("Steam.MinPlaytime = %d, want 120", cfg.Steam.MinPlaytime)
	}
	if cfg.Recommend.SimilarUsers != 7 {
		t.Errorf("Recommend.SimilarUsers = %d, want 7", cfg.Recommend.SimilarUsers)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "https://app.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100 (env beats file)", cfg.Server.Port)
	}
	// untouched sections keep their defaults
	if cfg.Recommend.Genres != 5 {
		t.Errorf("Recommend.Genres = %d, want 5", cfg.Recommend.Genres)
	}
}

// TestLoadWithKoanf_Invalid verifies that validation errors surface from Load
func TestLoadWithKoanf_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STEAM_MAX_DEPTH", "9")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error for STEAM_MAX_DEPTH=9")
	}
}

func TestFindConfigFile_MissingOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "/nonexistent/gamegraph.yaml")

	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() = %q, want empty", got)
	}
}
