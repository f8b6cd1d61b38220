// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gamegraph/internal/models"
)

// Key prefixes for BadgerDB storage
const (
	metaKey       = "snapshot:meta"
	friendsPrefix = "snapshot:friends:"
	gamesPrefix   = "snapshot:games:"
	detailPrefix  = "detail:"
)

// ErrNoSnapshot is returned by Load when no snapshot has been saved.
var ErrNoSnapshot = errors.New("no snapshot saved")

// Config configures the BadgerDB store.
type Config struct {
	// Path is the BadgerDB directory.
	Path string

	// InMemory keeps all data in memory. Path is ignored.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool

	// GCDiscardRatio is the value log GC threshold used after Save.
	// Default: 0.5
	GCDiscardRatio float64
}

// meta is the snapshot header stored under metaKey.
type meta struct {
	Order     []models.UserID `json:"order"`
	Root      models.UserID   `json:"root"`
	MaxDepth  int             `json:"max_depth"`
	CrawledAt time.Time       `json:"crawled_at"`
	SavedAt   time.Time       `json:"saved_at"`
}

// Store is a BadgerDB-backed snapshot store. It is safe for concurrent use.
type Store struct {
	db     *badger.DB
	cfg    Config
	logger zerolog.Logger
}

// Open opens or creates a store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("snapshot path is required")
	}
	if cfg.GCDiscardRatio <= 0 || cfg.GCDiscardRatio >= 1 {
		cfg.GCDiscardRatio = 0.5
	}

	logger = logger.With().Str("component", "snapshot").Logger()

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = &badgerLogger{logger: logger}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Snapshot store opened")

	return &Store{db: db, cfg: cfg, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with tables. Game metadata is merged
// into the detail cache rather than replaced.
//
// The meta key marks a complete snapshot: it is deleted before the previous
// rows are dropped and written only after the new rows are flushed, so an
// interrupted Save leaves Load returning ErrNoSnapshot.
func (s *Store) Save(ctx context.Context, tables *models.Tables) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	if err := s.clear(); err != nil {
		return err
	}
	if err := s.writeTables(tables); err != nil {
		return err
	}
	if err := s.writeMeta(meta{
		Order:     tables.Users(),
		Root:      tables.RootUser(),
		MaxDepth:  tables.MaxDepth,
		CrawledAt: tables.CrawledAt,
		SavedAt:   time.Now().UTC(),
	}); err != nil {
		return err
	}

	s.runGC()

	s.logger.Info().
		Int("users", len(tables.Friends)).
		Int("details", len(tables.Details)).
		Dur("duration", time.Since(start)).
		Msg("Snapshot saved")
	return nil
}

// clear removes the meta key and then the previous snapshot rows.
func (s *Store) clear() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(metaKey))
	})
	if err != nil {
		return fmt.Errorf("invalidate previous snapshot: %w", err)
	}
	if err := s.db.DropPrefix([]byte(friendsPrefix), []byte(gamesPrefix)); err != nil {
		return fmt.Errorf("drop previous snapshot: %w", err)
	}
	return nil
}

// writeTables writes the friend, game and detail rows in one batch.
func (s *Store) writeTables(tables *models.Tables) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for uid, friends := range tables.Friends {
		if err := setJSON(wb, friendsPrefix+uid, friends); err != nil {
			return err
		}
	}
	for uid, games := range tables.OwnedGames {
		if err := setJSON(wb, gamesPrefix+uid, games); err != nil {
			return err
		}
	}
	for id, detail := range tables.Details {
		if err := setJSON(wb, detailKey(id), detail); err != nil {
			return err
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

// writeMeta commits the snapshot header.
func (s *Store) writeMeta(m meta) error {
	val, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(metaKey), val)
	})
	if err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. Details are limited to games some user owns.
func (s *Store) Load(ctx context.Context) (*models.Tables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tables := models.NewTables()
	var m meta
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &m)
		}); err != nil {
			return fmt.Errorf("decode meta: %w", err)
		}

		if err := scanPrefix(txn, friendsPrefix, func(uid string, val []byte) error {
			var friends []models.UserID
			if err := json.Unmarshal(val, &friends); err != nil {
				return fmt.Errorf("decode friends of %s: %w", uid, err)
			}
			tables.Friends[uid] = friends
			return nil
		}); err != nil {
			return err
		}

		return scanPrefix(txn, gamesPrefix, func(uid string, val []byte) error {
			var games []models.OwnedGame
			if err := json.Unmarshal(val, &games); err != nil {
				return fmt.Errorf("decode games of %s: %w", uid, err)
			}
			tables.OwnedGames[uid] = games
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		return nil, ErrNoSnapshot
	}

	tables.Order = m.Order
	tables.Root = m.Root
	tables.MaxDepth = m.MaxDepth
	tables.CrawledAt = m.CrawledAt

	for _, id := range tables.GameIDs() {
		detail, ok, err := s.Detail(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			tables.Details[id] = detail
		}
	}

	return tables, nil
}

// Detail returns cached metadata for a game. ok is false on a cache miss.
// A cached nil detail records a failed upstream lookup.
func (s *Store) Detail(_ context.Context, id models.GameID) (detail *models.GameDetail, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(detailKey(id)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		ok = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &detail)
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("get detail %d: %w", id, err)
	}
	return detail, ok, nil
}

// PutDetail caches metadata for a game. A nil detail is cached as well.
func (s *Store) PutDetail(_ context.Context, id models.GameID, detail *models.GameDetail) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshal detail: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(detailKey(id)), data)
	})
}

// runGC reclaims value log space until badger reports nothing to collect.
func (s *Store) runGC() {
	if s.cfg.InMemory {
		return
	}
	for {
		err := s.db.RunValueLogGC(s.cfg.GCDiscardRatio)
		if err != nil {
			if !errors.Is(err, badger.ErrNoRewrite) {
				s.logger.Debug().Err(err).Msg("Value log GC stopped")
			}
			return
		}
	}
}

func detailKey(id models.GameID) string {
	return detailPrefix + strconv.Itoa(id)
}

func setJSON(wb *badger.WriteBatch, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := wb.Set([]byte(key), data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func scanPrefix(txn *badger.Txn, prefix string, fn func(suffix string, val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		item := it.Item()
		suffix := strings.TrimPrefix(string(item.Key()), prefix)
		if err := item.Value(func(val []byte) error {
			return fn(suffix, val)
		}); err != nil {
			return err
		}
	}
	return nil
}

// badgerLogger routes BadgerDB warnings and errors through zerolog.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Trace().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(strings.TrimSpace(format), args...)
}
