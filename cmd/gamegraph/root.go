// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/gamegraph/internal/app"
	"github.com/tomtom215/gamegraph/internal/config"
	"github.com/tomtom215/gamegraph/internal/logging"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "gamegraph",
		Short:        "Social game interest recommendations from a Steam friend graph",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file path (overrides CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		newCrawlCmd(opts),
		newImportCmd(opts),
		newRecommendCmd(opts),
		newExportCmd(opts),
	)
	return rootCmd
}

// load reads the configuration and initializes console logging on stderr.
func (o *rootOptions) load() (*config.Config, error) {
	if o.configPath != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, o.configPath); err != nil {
			return nil, fmt.Errorf("set %s: %w", config.ConfigPathEnvVar, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	logging.Init(logging.Config{
		Level:  level,
		Format: "console",
		Caller: cfg.Logging.Caller,
		App:    "gamegraph-cli",
		Output: os.Stderr,
	})
	return cfg, nil
}

// withComponents opens the shared components for the duration of fn.
func withComponents(ctx context.Context, cfg *config.Config, fn func(*app.Components, zerolog.Logger) error) (err error) {
	logger := logging.WithComponent("cli")
	components, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := components.Close(context.WithoutCancel(ctx)); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(components, logger)
}
