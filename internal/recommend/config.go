// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package recommend

import (
	"fmt"
)

// Config contains the ranking sizes and graph construction options.
type Config struct {
	// RootUserID is the user propagation starts from.
	// Empty means the crawl root recorded in the tables.
	RootUserID string `json:"root_user_id"`

	// SimilarUsers is the number of similar users returned by default.
	// Default: 3.
	SimilarUsers int `json:"similar_users"`

	// Games is the number of most-played games returned by default.
	// Default: 5.
	Games int `json:"games"`

	// Genres is the number of top genres returned by default.
	// Default: 5.
	Genres int `json:"genres"`

	// MaxK caps every requested ranking size.
	// Default: 100.
	MaxK int `json:"max_k"`

	// MinPlaytime drops ownership records with playtime at or below it.
	// Default: 0 (keep all records).
	MinPlaytime int `json:"min_playtime"`
}

// DefaultConfig returns a Config with the default ranking sizes.
func DefaultConfig() *Config {
	return &Config{
		SimilarUsers: 3,
		Games:        5,
		Genres:       5,
		MaxK:         100,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.SimilarUsers < 1 {
		return fmt.Errorf("similar_users must be positive, got %d", c.SimilarUsers)
	}
	if c.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Genres < 1 {
		return fmt.Errorf("genres must be positive, got %d", c.Genres)
	}
	if c.MaxK < 1 {
		return fmt.Errorf("max_k must be positive, got %d", c.MaxK)
	}
	if c.SimilarUsers > c.MaxK || c.Games > c.MaxK || c.Genres > c.MaxK {
		return fmt.Errorf("default ranking sizes must not exceed max_k (%d)", c.MaxK)
	}
	if c.MinPlaytime < 0 {
		return fmt.Errorf("min_playtime must be non-negative, got %d", c.MinPlaytime)
	}
	return nil
}

// clamp limits a requested ranking size to MaxK.
func (c *Config) clamp(k int) int {
	if k > c.MaxK {
		return c.MaxK
	}
	return k
}
