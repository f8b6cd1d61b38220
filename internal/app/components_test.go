// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamegraph/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Steam: config.SteamConfig{
			RootUserID:        "76561197960435530",
			MaxDepth:          2,
			MinPlaytime:       300,
			RequestsPerSecond: 2,
			Burst:             4,
			Timeout:           5 * time.Second,
		},
		Snapshot: config.SnapshotConfig{
			Path:            t.TempDir(),
			ImportFile:      "in.json",
			ExportFile:      "out.json",
			CrawlOnStartup:  true,
			RefreshInterval: time.Hour,
		},
		Recommend: config.RecommendConfig{
			SimilarUsers: 3,
			Games:        5,
			Genres:       4,
			MaxK:         50,
		},
		Neo4j: config.Neo4jConfig{
			URI:            "bolt://localhost:7687",
			Database:       "neo4j",
			MaxConnections: 7,
			BatchSize:      100,
		},
	}
}

func TestOpenWithoutOptionalParts(t *testing.T) {
	cfg := testConfig(t)

	c, err := Open(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() {
		if err := c.Close(context.Background()); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	if c.Store == nil {
		t.Fatal("Store is nil")
	}
	if c.Crawler != nil || c.Steam != nil {
		t.Error("crawler created without an API key")
	}
	if c.ServiceCrawler() != nil {
		t.Error("ServiceCrawler() must be a nil interface when crawling is disabled")
	}
	if c.ServiceExporter() != nil {
		t.Error("ServiceExporter() must be a nil interface when neo4j is disabled")
	}
}

func TestOpenWithSteamKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.Steam.APIKey = "key"

	c, err := Open(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close(context.Background()) //nolint:errcheck // test cleanup

	if c.Crawler == nil || c.ServiceCrawler() == nil {
		t.Error("crawler not created with an API key")
	}
}

func TestOpenNeo4jMissingURI(t *testing.T) {
	cfg := testConfig(t)
	cfg.Neo4j.Enabled = true
	cfg.Neo4j.URI = ""

	if _, err := Open(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatal("Open() expected error for missing neo4j URI")
	}
}

func TestConversions(t *testing.T) {
	cfg := testConfig(t)

	crawl := CrawlConfig(cfg)
	if crawl.MaxDepth != 2 || crawl.MinPlaytime != 300 {
		t.Errorf("CrawlConfig() = %+v", crawl)
	}

	sc := SteamConfig(cfg)
	if sc.RequestsPerSecond != 2 || sc.Burst != 4 || sc.Timeout != 5*time.Second {
		t.Errorf("SteamConfig() = %+v", sc)
	}

	rc := RecommendConfig(cfg)
	if err := rc.Validate(); err != nil {
		t.Errorf("RecommendConfig().Validate() error = %v", err)
	}
	if rc.Genres != 4 || rc.MaxK != 50 {
		t.Errorf("RecommendConfig() = %+v", rc)
	}

	opts := Neo4jOptions(cfg)
	if opts.URI != cfg.Neo4j.URI || opts.MaxConnections != 7 {
		t.Errorf("Neo4jOptions() = %+v", opts)
	}

	es := EngineServiceConfig(cfg)
	if es.CrawlRoot != cfg.Steam.RootUserID || !es.CrawlOnStartup || es.RefreshInterval != time.Hour {
		t.Errorf("EngineServiceConfig() = %+v", es)
	}
	if es.ImportFile != "in.json" || es.ExportFile != "out.json" || es.Recommend == nil {
		t.Errorf("EngineServiceConfig() files = %+v", es)
	}
}
