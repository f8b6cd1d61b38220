// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamegraph/internal/graphstore"
	"github.com/tomtom215/gamegraph/internal/logging"
	"github.com/tomtom215/gamegraph/internal/metrics"
	"github.com/tomtom215/gamegraph/internal/models"
	"github.com/tomtom215/gamegraph/internal/recommend"
	"github.com/tomtom215/gamegraph/internal/snapshot"
)

// SnapshotStore persists the latest input tables. *snapshot.Store implements it.
type SnapshotStore interface {
	Load(ctx context.Context) (*models.Tables, error)
	Save(ctx context.Context, tables *models.Tables) error
}

// Crawler acquires fresh tables from Steam. *steam.Crawler implements it.
type Crawler interface {
	Crawl(ctx context.Context, root models.UserID) (*models.Tables, error)
}

// GraphExporter mirrors a built engine into a graph database. *graphstore.Exporter implements it.
type GraphExporter interface {
	Export(ctx context.Context, src graphstore.Source) (graphstore.ExportStats, error)
}

// EngineServiceConfig holds configuration for the engine service.
type EngineServiceConfig struct {
	// CrawlRoot is the Steam id crawls start from.
	CrawlRoot models.UserID

	// CrawlOnStartup crawls even when the store already holds a snapshot.
	CrawlOnStartup bool

	// ImportFile seeds an empty store from a JSON cache file.
	ImportFile string

	// ExportFile receives the tables after every successful build.
	ExportFile string

	// RefreshInterval rebuilds the engine periodically. Zero disables refresh.
	RefreshInterval time.Duration

	Recommend *recommend.Config
}

// EngineService builds the recommendation engine and publishes it to a Holder.
//
// Table sources, in order: a fresh crawl (startup flag or refresh with a
// crawler), the snapshot store, the import file, then a crawl when the
// store is empty. A failed first build is returned so suture retries it with
// backoff; a failed refresh keeps the engine already being served.
type EngineService struct {
	store    SnapshotStore
	crawler  Crawler       // nil when no Steam API key is configured
	exporter GraphExporter // nil when Neo4j export is disabled
	holder   *recommend.Holder
	config   EngineServiceConfig
	logger   zerolog.Logger
}

// NewEngineService creates the engine service. crawler and exporter may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngineService(store SnapshotStore, crawler Crawler, exporter GraphExporter, holder *recommend.Holder, cfg EngineServiceConfig, logger zerolog.Logger) *EngineService {
	return &EngineService{
		store:    store,
		crawler:  crawler,
		exporter: exporter,
		holder:   holder,
		config:   cfg,
		logger:   logger.With().Str("service", "engine").Logger(),
	}
}

// Serve implements suture.Service.
func (s *EngineService) Serve(ctx context.Context) error {
	if !s.holder.Ready() {
		if err := s.Rebuild(ctx, s.config.CrawlOnStartup); err != nil {
			return fmt.Errorf("initial engine build: %w", err)
		}
	}

	if s.config.RefreshInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Rebuild(ctx, s.crawler != nil); err != nil {
				s.logger.Warn().Err(err).Msg("engine refresh failed, keeping current engine")
			}
		}
	}
}

// Rebuild acquires tables, builds a new engine and publishes it.
func (s *EngineService) Rebuild(ctx context.Context, crawl bool) error {
	ctx = logging.ContextWithCrawlID(ctx, logging.GenerateCrawlID())
	log := logging.Ctx(logging.ContextWithLogger(ctx, s.logger))

	tables, source, err := s.acquire(ctx, crawl)
	if err != nil {
		return err
	}

	start := time.Now()
	engine, err := recommend.NewEngine(tables, s.config.Recommend, s.logger)
	st := models.GraphStats{}
	if engine != nil {
		st = engine.Stats()
	}
	metrics.RecordGraphBuild(time.Since(start), st.Users, st.Games, st.Edges, err)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	s.holder.Publish(engine)
	log.Info().
		Str("source", source).
		Str("root", engine.Root()).
		Int("users", st.Users).
		Int("games", st.Games).
		Msg("engine published")

	s.exportFile(tables, log)
	s.exportGraph(ctx, engine, log)
	return nil
}

// acquire returns the tables to build from and a label naming their source.
func (s *EngineService) acquire(ctx context.Context, crawl bool) (*models.Tables, string, error) {
	if crawl && s.crawler != nil {
		tables, err := s.crawlAndSave(ctx)
		return tables, "crawl", err
	}

	tables, err := s.store.Load(ctx)
	metrics.RecordSnapshotOperation("load", ignoreMissing(err))
	if err == nil {
		return tables, "snapshot", nil
	}
	if !errors.Is(err, snapshot.ErrNoSnapshot) {
		return nil, "", fmt.Errorf("load snapshot: %w", err)
	}

	if s.config.ImportFile != "" {
		tables, err = snapshot.ReadFile(s.config.ImportFile)
		metrics.RecordSnapshotOperation("import", err)
		if err != nil {
			return nil, "", fmt.Errorf("import %s: %w", s.config.ImportFile, err)
		}
		if err := s.save(ctx, tables); err != nil {
			return nil, "", err
		}
		return tables, "import", nil
	}

	if s.crawler != nil {
		tables, err := s.crawlAndSave(ctx)
		return tables, "crawl", err
	}
	return nil, "", fmt.Errorf("no snapshot, import file or crawler: %w", snapshot.ErrNoSnapshot)
}

func (s *EngineService) crawlAndSave(ctx context.Context) (*models.Tables, error) {
	if s.config.CrawlRoot == "" {
		return nil, errors.New("crawl root is not configured")
	}
	tables, err := s.crawler.Crawl(ctx, s.config.CrawlRoot)
	if err != nil {
		return nil, fmt.Errorf("crawl: %w", err)
	}
	if err := s.save(ctx, tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *EngineService) save(ctx context.Context, tables *models.Tables) error {
	err := s.store.Save(ctx, tables)
	metrics.RecordSnapshotOperation("save", err)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *EngineService) exportFile(tables *models.Tables, log *zerolog.Logger) {
	if s.config.ExportFile == "" {
		return
	}
	err := snapshot.WriteFile(s.config.ExportFile, tables)
	metrics.RecordSnapshotOperation("export", err)
	if err != nil {
		log.Warn().Err(err).Str("path", s.config.ExportFile).Msg("writing cache file failed")
	}
}

// exportGraph is best effort: the engine is already serving.
func (s *EngineService) exportGraph(ctx context.Context, engine *recommend.Engine, log *zerolog.Logger) {
	if s.exporter == nil {
		return
	}
	stats, err := s.exporter.Export(ctx, engine)
	if err != nil {
		log.Warn().Err(err).Msg("graph export failed")
		return
	}
	log.Info().
		Int("users", stats.Users).
		Int("games", stats.Games).
		Dur("duration", stats.Duration).
		Msg("graph exported")
}

// ignoreMissing keeps an empty store from counting as a failed load.
func ignoreMissing(err error) error {
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		return nil
	}
	return err
}

// String names the service in supervisor events.
func (s *EngineService) String() string {
	return "engine-service"
}
