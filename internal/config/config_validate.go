// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package config

import (
	"fmt"
	"strconv"
	"time"
)

// maxCrawlDepth bounds STEAM_MAX_DEPTH; every hop multiplies the upstream calls.
const maxCrawlDepth = 3

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateSteam(); err != nil {
		return err
	}

	if err := c.validateSnapshot(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateNeo4j(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateSteam validates the Steam API and crawl settings.
// The API key is checked by CanCrawl, since serving an imported snapshot needs none.
func (c *Config) validateSteam() error {
	if c.Steam.RootUserID != "" && !isSteamID(c.Steam.RootUserID) {
		return fmt.Errorf("STEAM_ROOT_USER_ID must be a decimal Steam id, got: %q", c.Steam.RootUserID)
	}
	if c.Steam.MaxDepth < 0 || c.Steam.MaxDepth > maxCrawlDepth {
		return fmt.Errorf("STEAM_MAX_DEPTH must be between 0 and %d", maxCrawlDepth)
	}
	if c.Steam.MinPlaytime < 0 {
		return fmt.Errorf("STEAM_MIN_PLAYTIME must not be negative")
	}
	if c.Steam.RequestsPerSecond <= 0 {
		return fmt.Errorf("STEAM_REQUESTS_PER_SECOND must be positive")
	}
	if c.Steam.Burst < 1 {
		return fmt.Errorf("STEAM_BURST must be at least 1")
	}
	if c.Steam.Timeout < time.Second {
		return fmt.Errorf("STEAM_TIMEOUT must be at least 1s")
	}
	if err := validateHTTPURL(c.Steam.APIURL, "STEAM_API_URL"); err != nil {
		return err
	}
	return validateHTTPURL(c.Steam.StoreURL, "STEAM_STORE_URL")
}

// validateSnapshot validates snapshot persistence settings
func (c *Config) validateSnapshot() error {
	if c.Snapshot.Path == "" {
		return fmt.Errorf("SNAPSHOT_PATH is required")
	}
	if c.Snapshot.RefreshInterval < 0 {
		return fmt.Errorf("SNAPSHOT_REFRESH_INTERVAL must not be negative")
	}
	if c.Snapshot.CrawlOnStartup {
		return c.validateCrawlCredentials("SNAPSHOT_CRAWL_ON_STARTUP=true")
	}
	return nil
}

// validateCrawlCredentials reports what a crawl is missing.
func (c *Config) validateCrawlCredentials(reason string) error {
	if c.Steam.APIKey == "" {
		return fmt.Errorf("STEAM_API_KEY is required when %s", reason)
	}
	if c.Steam.RootUserID == "" {
		return fmt.Errorf("STEAM_ROOT_USER_ID is required when %s", reason)
	}
	return nil
}

// CanCrawl reports whether the Steam settings are sufficient to crawl.
func (c *Config) CanCrawl() error {
	return c.validateCrawlCredentials("crawling Steam")
}

// validateRecommend validates the recommender defaults
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.RootUserID != "" && !isSteamID(r.RootUserID) {
		return fmt.Errorf("RECOMMEND_ROOT_USER_ID must be a decimal Steam id, got: %q", r.RootUserID)
	}
	if r.MaxK < 1 {
		return fmt.Errorf("RECOMMEND_MAX_K must be at least 1")
	}
	limits := []struct {
		name  string
		value int
	}{
		{"RECOMMEND_SIMILAR_USERS", r.SimilarUsers},
		{"RECOMMEND_GAMES", r.Games},
		{"RECOMMEND_GENRES", r.Genres},
	}
	for _, l := range limits {
		if l.value < 1 || l.value > r.MaxK {
			return fmt.Errorf("%s must be between 1 and RECOMMEND_MAX_K (%d)", l.name, r.MaxK)
		}
	}
	if r.MinPlaytime < 0 {
		return fmt.Errorf("RECOMMEND_MIN_PLAYTIME must not be negative")
	}
	return nil
}

// validateNeo4j validates the graph export target (only if enabled)
func (c *Config) validateNeo4j() error {
	if !c.Neo4j.Enabled {
		return nil
	}
	if c.Neo4j.URI == "" {
		return fmt.Errorf("NEO4J_URI is required when NEO4J_ENABLED=true")
	}
	if err := validateBoltURL(c.Neo4j.URI); err != nil {
		return fmt.Errorf("NEO4J_URI is invalid: %w", err)
	}
	if c.Neo4j.MaxConnections < 1 {
		return fmt.Errorf("NEO4J_MAX_CONNECTIONS must be at least 1")
	}
	if c.Neo4j.BatchSize < 1 {
		return fmt.Errorf("NEO4J_BATCH_SIZE must be at least 1")
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates CORS and rate limiting configuration
func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if c.HasWildcardCORS() && len(c.Security.CORSOrigins) > 1 {
		return fmt.Errorf("CORS_ORIGINS=* must not be combined with explicit origins")
	}
	return c.validateRateLimits()
}

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// isSteamID reports whether s is a positive decimal 64-bit id.
func isSteamID(s string) bool {
	n, err := strconv.ParseUint(s, 10, 64)
	return err == nil && n > 0
}
