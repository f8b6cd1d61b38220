// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package snapshot

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamegraph/internal/models"
)

func setupTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(Config{Path: path}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return store
}

func sampleTables() *models.Tables {
	t := models.NewTables()
	t.Order = []models.UserID{"76561198000000001", "76561198000000002"}
	t.Root = "76561198000000001"
	t.MaxDepth = 1
	t.CrawledAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	t.Friends["76561198000000001"] = []models.UserID{"76561198000000002"}
	t.Friends["76561198000000002"] = []models.UserID{"76561198000000001"}
	t.OwnedGames["76561198000000001"] = []models.OwnedGame{{GameID: 570, PlaytimeMinutes: 4000}}
	t.OwnedGames["76561198000000002"] = []models.OwnedGame{
		{GameID: 570, PlaytimeMinutes: 900},
		{GameID: 730, PlaytimeMinutes: 700},
	}
	t.Details[570] = &models.GameDetail{Name: "Dota 2", Genres: []models.Genre{{ID: "1", Description: "Action"}, {ID: "2", Description: "Strategy"}}}
	t.Details[730] = nil
	return t
}

func TestStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, t.TempDir())
	defer store.Close()

	want := sampleTables()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(got.Friends, want.Friends) {
		t.Errorf("Friends = %v, want %v", got.Friends, want.Friends)
	}
	if !reflect.DeepEqual(got.OwnedGames, want.OwnedGames) {
		t.Errorf("OwnedGames = %v, want %v", got.OwnedGames, want.OwnedGames)
	}
	if !reflect.DeepEqual(got.Order, want.Order) {
		t.Errorf("Order = %v, want %v", got.Order, want.Order)
	}
	if got.Root != want.Root || got.MaxDepth != want.MaxDepth || !got.CrawledAt.Equal(want.CrawledAt) {
		t.Errorf("provenance = %s/%d/%v", got.Root, got.MaxDepth, got.CrawledAt)
	}

	if d := got.Details[570]; d == nil || d.Name != "Dota 2" || len(d.Genres) != 2 {
		t.Errorf("Details[570] = %+v", d)
	}
	if d, ok := got.Details[730]; !ok || d != nil {
		t.Errorf("Details[730] = %+v, %v; want cached nil", d, ok)
	}
}

func TestStoreLoadEmpty(t *testing.T) {
	store := setupTestStore(t, t.TempDir())
	defer store.Close()

	_, err := store.Load(context.Background())
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Load() error = %v, want ErrNoSnapshot", err)
	}
}

func TestStoreSaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, t.TempDir())
	defer store.Close()

	if err := store.Save(ctx, sampleTables()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	next := models.NewTables()
	next.Friends["solo"] = nil
	next.OwnedGames["solo"] = []models.OwnedGame{{GameID: 570, PlaytimeMinutes: 1000}}
	if err := store.Save(ctx, next); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Friends) != 1 || !got.HasUser("solo") {
		t.Errorf("Friends = %v, want only solo", got.Friends)
	}
	if got.Root != "solo" {
		t.Errorf("Root = %q, want solo", got.Root)
	}
	// Metadata from the first crawl stays cached.
	if d := got.Details[570]; d == nil || d.Name != "Dota 2" {
		t.Errorf("Details[570] = %+v, want cached entry", d)
	}
	if _, ok := got.Details[730]; ok {
		t.Error("Details[730] should not be loaded for an unowned game")
	}
}

func TestStoreDetailCache(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, t.TempDir())
	defer store.Close()

	if _, ok, err := store.Detail(ctx, 10); err != nil || ok {
		t.Fatalf("Detail() = ok %v, err %v; want miss", ok, err)
	}

	if err := store.PutDetail(ctx, 10, &models.GameDetail{Name: "Ten"}); err != nil {
		t.Fatalf("PutDetail() error = %v", err)
	}
	if err := store.PutDetail(ctx, 20, nil); err != nil {
		t.Fatalf("PutDetail(nil) error = %v", err)
	}

	d, ok, err := store.Detail(ctx, 10)
	if err != nil || !ok || d == nil || d.Name != "Ten" {
		t.Errorf("Detail(10) = %+v, %v, %v", d, ok, err)
	}
	d, ok, err = store.Detail(ctx, 20)
	if err != nil || !ok || d != nil {
		t.Errorf("Detail(20) = %+v, %v, %v; want cached nil", d, ok, err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "badger")

	first := setupTestStore(t, dir)
	if err := first.Save(ctx, sampleTables()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second := setupTestStore(t, dir)
	defer second.Close()

	got, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Friends) != 2 {
		t.Errorf("Friends = %v, want 2 users", got.Friends)
	}
}

func TestStoreInterruptedSaveLeavesNoSnapshot(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(s *Store) error
	}{
		{"stopped after clearing", func(s *Store) error {
			return s.clear()
		}},
		{"stopped before meta", func(s *Store) error {
			if err := s.clear(); err != nil {
				return err
			}
			replacement := sampleTables()
			delete(replacement.Friends, "76561198000000002")
			return s.writeTables(replacement)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "badger")

			first := setupTestStore(t, dir)
			if err := first.Save(ctx, sampleTables()); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if err := tt.run(first); err != nil {
				t.Fatalf("partial save error = %v", err)
			}
			if err := first.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			second := setupTestStore(t, dir)
			defer second.Close()

			got, err := second.Load(ctx)
			if !errors.Is(err, ErrNoSnapshot) {
				t.Fatalf("Load() = %+v, %v; want ErrNoSnapshot", got, err)
			}

			// a later complete save is readable again
			if err := second.Save(ctx, sampleTables()); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err = second.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(got.Friends) != 2 {
				t.Errorf("Friends = %v, want 2 users", got.Friends)
			}
		})
	}
}

func TestStoreInMemory(t *testing.T) {
	ctx := context.Background()
	store, err := Open(Config{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if err := store.Save(ctx, sampleTables()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := store.Load(ctx); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(Config{}, zerolog.Nop()); err == nil {
		t.Error("Open() with empty path should fail")
	}
}

func TestStoreCanceledContext(t *testing.T) {
	store := setupTestStore(t, t.TempDir())
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Save(ctx, sampleTables()); !errors.Is(err, context.Canceled) {
		t.Errorf("Save() error = %v, want context.Canceled", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}
