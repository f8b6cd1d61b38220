// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package recommend

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamegraph/internal/models"
)

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	e, err := NewEngine(scenarioTables(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestEngineReport(t *testing.T) {
	e := newTestEngine(t, nil)

	report, err := e.Report("A")
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if report.BestMatch != "B" {
		t.Errorf("BestMatch = %q, want B", report.BestMatch)
	}
	if len(report.SimilarUsers) != 1 {
		t.Errorf("SimilarUsers = %+v, want one entry", report.SimilarUsers)
	}

	if len(report.Games) != 2 {
		t.Fatalf("Games = %+v, want 2", report.Games)
	}
	if report.Games[0].Name != "Two" || report.Games[0].PlaytimeMinutes != 2000 {
		t.Errorf("Games[0] = %+v, want Two/2000", report.Games[0])
	}
	if report.Games[1].Name != "One" {
		t.Errorf("Games[1] = %+v, want One", report.Games[1])
	}

	if len(report.Genres) != 2 || report.Genres[0].Label != "Action" || report.Genres[1].Label != "RPG" {
		t.Errorf("Genres = %+v, want [Action RPG]", report.Genres)
	}
	if report.Genres[1].Score >= report.Genres[0].Score {
		t.Errorf("discounted RPG %f should rank below Action %f", report.Genres[1].Score, report.Genres[0].Score)
	}
}

func TestEngineReportWithoutMatches(t *testing.T) {
	e := newTestEngine(t, nil)

	report, err := e.Report("C")
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if len(report.SimilarUsers) != 2 {
		t.Errorf("SimilarUsers = %+v, want A and B", report.SimilarUsers)
	}
	if len(report.Genres) != 0 {
		t.Errorf("Genres = %+v, want none for C", report.Genres)
	}
}

func TestEngineUnknownUser(t *testing.T) {
	e := newTestEngine(t, nil)

	calls := map[string]func() error{
		"SimilarUsers": func() error { _, err := e.SimilarUsers("ghost", 3); return err },
		"PlayedGames":  func() error { _, err := e.PlayedGames("ghost", 3); return err },
		"Genres":       func() error { _, err := e.Genres("ghost", 3); return err },
		"Report":       func() error { _, err := e.Report("ghost"); return err },
		"Profile":      func() error { _, err := e.Profile("ghost"); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			if !errors.Is(err, ErrUnknownUser) {
				t.Fatalf("error = %v, want ErrUnknownUser", err)
			}
			if !strings.Contains(err.Error(), "ghost") {
				t.Errorf("error %q does not name the user", err)
			}
		})
	}
}

func TestEngineClampsK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxK = 1
	cfg.SimilarUsers = 1
	cfg.Games = 1
	cfg.Genres = 1
	e := newTestEngine(t, cfg)

	games, err := e.PlayedGames("B", 50)
	if err != nil {
		t.Fatalf("PlayedGames() error = %v", err)
	}
	if len(games) != 1 {
		t.Errorf("PlayedGames() returned %d, want 1", len(games))
	}
}

func TestEngineMinPlaytime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinPlaytime = 600
	e := newTestEngine(t, cfg)

	games, err := e.PlayedGames("B", 5)
	if err != nil {
		t.Fatalf("PlayedGames() error = %v", err)
	}
	if len(games) != 1 || games[0].GameID != 2 {
		t.Errorf("PlayedGames() = %+v, want only game 2", games)
	}
}

func TestEngineRoot(t *testing.T) {
	t.Run("crawl order root", func(t *testing.T) {
		e := newTestEngine(t, nil)
		if e.Root() != "A" {
			t.Errorf("Root() = %q, want A", e.Root())
		}
		stats := e.Stats()
		if stats.Users != 3 || stats.Games != 2 || stats.Visited != 3 {
			t.Errorf("Stats() = %+v", stats)
		}
	})

	t.Run("configured root", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RootUserID = "B"
		e := newTestEngine(t, cfg)
		if e.Root() != "B" {
			t.Errorf("Root() = %q, want B", e.Root())
		}
	})

	t.Run("configured root outside the graph", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RootUserID = "ghost"
		_, err := NewEngine(scenarioTables(), cfg, zerolog.Nop())
		if !errors.Is(err, ErrUnknownUser) {
			t.Errorf("NewEngine() error = %v, want ErrUnknownUser", err)
		}
	})

	t.Run("empty tables", func(t *testing.T) {
		e, err := NewEngine(models.NewTables(), nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		if e.Stats().Users != 0 {
			t.Errorf("Users = %d, want 0", e.Stats().Users)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero similar users", mutate: func(c *Config) { c.SimilarUsers = 0 }, wantErr: true},
		{name: "zero games", mutate: func(c *Config) { c.Games = 0 }, wantErr: true},
		{name: "zero genres", mutate: func(c *Config) { c.Genres = 0 }, wantErr: true},
		{name: "zero max k", mutate: func(c *Config) { c.MaxK = 0 }, wantErr: true},
		{name: "default above max k", mutate: func(c *Config) { c.MaxK = 2 }, wantErr: true},
		{name: "negative playtime", mutate: func(c *Config) { c.MinPlaytime = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
