// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/gamegraph/internal/api"
	"github.com/tomtom215/gamegraph/internal/app"
	"github.com/tomtom215/gamegraph/internal/config"
	"github.com/tomtom215/gamegraph/internal/logging"
	"github.com/tomtom215/gamegraph/internal/recommend"
	"github.com/tomtom215/gamegraph/internal/supervisor"
	"github.com/tomtom215/gamegraph/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		App:    "gamegraph-server",
	})

	logging.Info().
		Str("snapshot_path", cfg.Snapshot.Path).
		Bool("crawl_enabled", cfg.CanCrawl() == nil).
		Bool("neo4j_enabled", cfg.Neo4j.Enabled).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Gamegraph with supervisor tree")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components, err := app.Open(ctx, cfg, logging.WithComponent("app"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize components")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := components.Close(closeCtx); err != nil {
			logging.Error().Err(err).Msg("Error closing components")
		}
	}()

	holder := &recommend.Holder{}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	// Data layer
	tree.AddDataService(services.NewEngineService(
		components.Store,
		components.ServiceCrawler(),
		components.ServiceExporter(),
		holder,
		app.EngineServiceConfig(cfg),
		logging.WithComponent("engine-service"),
	))

	// API layer
	router := api.NewRouter(api.NewHandler(holder), &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http-server")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if cfg.HasWildcardCORS() && cfg.IsProduction() {
		logging.Warn().Msg("CORS allows any origin in production")
	}

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
