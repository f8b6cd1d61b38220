// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamegraph/internal/config"
	"github.com/tomtom215/gamegraph/internal/graphstore"
	"github.com/tomtom215/gamegraph/internal/recommend"
	"github.com/tomtom215/gamegraph/internal/snapshot"
	"github.com/tomtom215/gamegraph/internal/steam"
	"github.com/tomtom215/gamegraph/internal/supervisor/services"
)

// Components holds the opened infrastructure. Optional parts are nil when
// their configuration disables them.
type Components struct {
	Store    *snapshot.Store
	Steam    *steam.Client        // nil without a Steam API key
	Crawler  *steam.Crawler       // nil without a Steam API key
	Exporter *graphstore.Exporter // nil unless Neo4j is enabled

	graph graphstore.Client
}

// Open opens the snapshot store and, when configured, the Steam crawler and
// the Neo4j exporter. Close releases everything Open acquired.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Components, error) {
	store, err := snapshot.Open(SnapshotConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	c := &Components{Store: store}

	if cfg.Steam.APIKey != "" {
		c.Steam = steam.NewClient(SteamConfig(cfg), logger)
		c.Crawler = steam.NewCrawler(c.Steam, store, CrawlConfig(cfg), logger)
	} else {
		logger.Info().Msg("STEAM_API_KEY not set, crawling disabled")
	}

	if cfg.Neo4j.Enabled {
		client, err := graphstore.NewNeo4jClient(ctx, Neo4jOptions(cfg))
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect neo4j: %w", err)
		}
		c.graph = client
		c.Exporter = graphstore.NewExporter(client, cfg.Neo4j.BatchSize, logger)
	}

	return c, nil
}

// Close closes the graph client and the snapshot store.
func (c *Components) Close(ctx context.Context) error {
	var errs []error
	if c.graph != nil {
		if err := c.graph.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close neo4j: %w", err))
		}
	}
	if err := c.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close snapshot store: %w", err))
	}
	return errors.Join(errs...)
}

// ServiceCrawler returns the crawler as a services.Crawler, or a nil
// interface when crawling is disabled.
func (c *Components) ServiceCrawler() services.Crawler {
	if c.Crawler == nil {
		return nil
	}
	return c.Crawler
}

// ServiceExporter returns the exporter as a services.GraphExporter, or a nil
// interface when Neo4j export is disabled.
func (c *Components) ServiceExporter() services.GraphExporter {
	if c.Exporter == nil {
		return nil
	}
	return c.Exporter
}

// SnapshotConfig converts the snapshot section.
func SnapshotConfig(cfg *config.Config) snapshot.Config {
	return snapshot.Config{Path: cfg.Snapshot.Path}
}

// SteamConfig converts the Steam client settings.
func SteamConfig(cfg *config.Config) steam.Config {
	return steam.Config{
		APIKey:            cfg.Steam.APIKey,
		APIURL:            cfg.Steam.APIURL,
		StoreURL:          cfg.Steam.StoreURL,
		RequestsPerSecond: cfg.Steam.RequestsPerSecond,
		Burst:             cfg.Steam.Burst,
		Timeout:           cfg.Steam.Timeout,
	}
}

// CrawlConfig converts the crawl bounds.
func CrawlConfig(cfg *config.Config) steam.CrawlConfig {
	return steam.CrawlConfig{
		MaxDepth:    cfg.Steam.MaxDepth,
		MinPlaytime: cfg.Steam.MinPlaytime,
	}
}

// RecommendConfig converts the recommend section.
func RecommendConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		RootUserID:   cfg.Recommend.RootUserID,
		SimilarUsers: cfg.Recommend.SimilarUsers,
		Games:        cfg.Recommend.Games,
		Genres:       cfg.Recommend.Genres,
		MaxK:         cfg.Recommend.MaxK,
		MinPlaytime:  cfg.Recommend.MinPlaytime,
	}
}

// Neo4jOptions converts the neo4j section.
func Neo4jOptions(cfg *config.Config) graphstore.Options {
	return graphstore.Options{
		URI:            cfg.Neo4j.URI,
		Database:       cfg.Neo4j.Database,
		Username:       cfg.Neo4j.Username,
		Password:       cfg.Neo4j.Password,
		MaxConnections: cfg.Neo4j.MaxConnections,
	}
}

// EngineServiceConfig converts the settings of the engine service.
func EngineServiceConfig(cfg *config.Config) services.EngineServiceConfig {
	return services.EngineServiceConfig{
		CrawlRoot:       cfg.Steam.RootUserID,
		CrawlOnStartup:  cfg.Snapshot.CrawlOnStartup,
		ImportFile:      cfg.Snapshot.ImportFile,
		ExportFile:      cfg.Snapshot.ExportFile,
		RefreshInterval: cfg.Snapshot.RefreshInterval,
		Recommend:       RecommendConfig(cfg),
	}
}
