// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gamegraph/internal/models"
)

// ReadFile loads tables from a JSON cache file.
func ReadFile(path string) (*models.Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	tables := models.NewTables()
	if err := json.Unmarshal(data, tables); err != nil {
		return nil, fmt.Errorf("decode cache file %s: %w", path, err)
	}
	if tables.Friends == nil {
		tables.Friends = make(map[models.UserID][]models.UserID)
	}
	if tables.OwnedGames == nil {
		tables.OwnedGames = make(map[models.UserID][]models.OwnedGame)
	}
	if tables.Details == nil {
		tables.Details = make(map[models.GameID]*models.GameDetail)
	}
	return tables, nil
}

// WriteFile writes tables to a JSON cache file. The file is replaced atomically.
func WriteFile(path string, tables *models.Tables) error {
	data, err := json.MarshalIndent(tables, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache file: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".gamegraph-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}
