// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/gamegraph/internal/app"
	"github.com/tomtom215/gamegraph/internal/config"
	"github.com/tomtom215/gamegraph/internal/graphstore"
	"github.com/tomtom215/gamegraph/internal/logging"
	"github.com/tomtom215/gamegraph/internal/models"
	"github.com/tomtom215/gamegraph/internal/recommend"
	"github.com/tomtom215/gamegraph/internal/snapshot"
	"github.com/tomtom215/gamegraph/internal/steam"
)

func newCrawlCmd(opts *rootOptions) *cobra.Command {
	var (
		depth       int
		minPlaytime int
		exportFile  string
	)

	cmd := &cobra.Command{
		Use:   "crawl [root-steam-id]",
		Short: "Crawl the Steam friend graph into the snapshot store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Steam.RootUserID = args[0]
			}
			if cmd.Flags().Changed("depth") {
				cfg.Steam.MaxDepth = depth
			}
			if cmd.Flags().Changed("min-playtime") {
				cfg.Steam.MinPlaytime = minPlaytime
			}
			if err := cfg.CanCrawl(); err != nil {
				return err
			}

			return withComponents(cmd.Context(), cfg, func(c *app.Components, logger zerolog.Logger) error {
				tables, err := c.Crawler.Crawl(cmd.Context(), cfg.Steam.RootUserID)
				if err != nil {
					return fmt.Errorf("crawl: %w", err)
				}
				if err := c.Store.Save(cmd.Context(), tables); err != nil {
					return fmt.Errorf("save snapshot: %w", err)
				}
				if exportFile != "" {
					if err := snapshot.WriteFile(exportFile, tables); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Crawled %d users and %d games from %s\n",
					len(tables.Friends), len(tables.Details), tables.RootUser())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&depth, "depth", steam.DefaultCrawlConfig().MaxDepth, "Friend hops to follow from the root")
	cmd.Flags().IntVar(&minPlaytime, "min-playtime", steam.DefaultCrawlConfig().MinPlaytime, "Drop games played this many minutes or less")
	cmd.Flags().StringVar(&exportFile, "export-file", "", "Also write the crawled tables to this JSON file")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load a JSON cache file into the snapshot store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			tables, err := snapshot.ReadFile(args[0])
			if err != nil {
				return err
			}

			return withComponents(cmd.Context(), cfg, func(c *app.Components, _ zerolog.Logger) error {
				if err := c.Store.Save(cmd.Context(), tables); err != nil {
					return fmt.Errorf("save snapshot: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d users and %d games from %s\n",
					len(tables.Friends), len(tables.Details), args[0])
				return nil
			})
		},
	}
}

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	var (
		file    string
		similar int
		games   int
		genres  int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "recommend [steam-id]",
		Short: "Print similar users, their most played games and top genres",
		Long: "Builds the interest graph and prints, for the given user (default: the graph root),\n" +
			"the most similar users, the most played games of the best match and the user's top genres.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			rc := app.RecommendConfig(cfg)
			for _, f := range []struct {
				name  string
				value int
				dst   *int
			}{{"similar", similar, &rc.SimilarUsers}, {"games", games, &rc.Games}, {"genres", genres, &rc.Genres}} {
				if cmd.Flags().Changed(f.name) {
					*f.dst = f.value
				}
			}

			return withTables(cmd, cfg, file, func(tables *models.Tables, logger zerolog.Logger) error {
				engine, err := recommend.NewEngine(tables, rc, logger)
				if err != nil {
					return err
				}
				user := engine.Root()
				if len(args) == 1 {
					user = args[0]
				}
				report, err := engine.Report(user)
				if err != nil {
					return err
				}
				if jsonOut {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(report)
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Read tables from a JSON cache file instead of the snapshot store")
	cmd.Flags().IntVar(&similar, "similar", 3, "Number of similar users")
	cmd.Flags().IntVar(&games, "games", 5, "Number of games of the best match")
	cmd.Flags().IntVar(&genres, "genres", 5, "Number of genres")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the report as JSON")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		file    string
		output  string
		toNeo4j bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the interest graph to Neo4j and/or the tables to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" && !toNeo4j {
				return errors.New("nothing to export: pass --output and/or --neo4j")
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if toNeo4j {
				cfg.Neo4j.Enabled = true
			}

			return withComponents(cmd.Context(), cfg, func(c *app.Components, logger zerolog.Logger) error {
				tables, err := loadTables(cmd, c, file)
				if err != nil {
					return err
				}
				if output != "" {
					if err := snapshot.WriteFile(output, tables); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote tables to %s\n", output)
				}
				if c.Exporter == nil {
					return nil
				}

				engine, err := recommend.NewEngine(tables, app.RecommendConfig(cfg), logger)
				if err != nil {
					return err
				}
				stats, err := c.Exporter.Export(cmd.Context(), engine)
				if err != nil {
					return err
				}
				printExportStats(cmd.OutOrStdout(), stats)

				users, games, err := c.Exporter.Counts(cmd.Context())
				if err != nil {
					logger.Warn().Err(err).Msg("Failed to read back node counts")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Graph database now holds %d users and %d games\n", users, games)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Read tables from a JSON cache file instead of the snapshot store")
	cmd.Flags().StringVar(&output, "output", "", "Write the tables to this JSON cache file")
	cmd.Flags().BoolVar(&toNeo4j, "neo4j", false, "Mirror the graph into Neo4j (uses the neo4j config section)")
	return cmd
}

// withTables runs fn with tables from file, or from the snapshot store when
// file is empty. The store is only opened when needed.
func withTables(cmd *cobra.Command, cfg *config.Config, file string, fn func(*models.Tables, zerolog.Logger) error) error {
	if file != "" {
		tables, err := snapshot.ReadFile(file)
		if err != nil {
			return err
		}
		return fn(tables, logging.WithComponent("cli"))
	}
	return withComponents(cmd.Context(), cfg, func(c *app.Components, logger zerolog.Logger) error {
		tables, err := loadTables(cmd, c, "")
		if err != nil {
			return err
		}
		return fn(tables, logger)
	})
}

func loadTables(cmd *cobra.Command, c *app.Components, file string) (*models.Tables, error) {
	if file != "" {
		return snapshot.ReadFile(file)
	}
	tables, err := c.Store.Load(cmd.Context())
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		return nil, fmt.Errorf("%w: run 'gamegraph crawl' or 'gamegraph import' first", err)
	}
	return tables, err
}

func printReport(w io.Writer, report *models.Report) {
	fmt.Fprintf(w, "Users most similar to %s:\n", report.UserID)
	if len(report.SimilarUsers) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, u := range report.SimilarUsers {
		fmt.Fprintf(w, "  %d. %s  %.4f\n", i+1, u.UserID, u.Similarity)
	}

	fmt.Fprintln(w)
	if report.BestMatch == "" {
		fmt.Fprintln(w, "No similar user to take games from.")
	} else {
		fmt.Fprintf(w, "Most played games of %s:\n", report.BestMatch)
		for i, g := range report.Games {
			name := g.Name
			if name == "" {
				name = fmt.Sprintf("app %d", g.GameID)
			}
			fmt.Fprintf(w, "  %d. %s  (%d min)\n", i+1, name, g.PlaytimeMinutes)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Top genres of %s:\n", report.UserID)
	if len(report.Genres) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, g := range report.Genres {
		fmt.Fprintf(w, "  %d. %s  %.4f\n", i+1, g.Label, g.Score)
	}
}

func printExportStats(w io.Writer, stats graphstore.ExportStats) {
	fmt.Fprintf(w, "Exported %d users, %d games, %d OWNS and %d FRIEND relationships in %s\n",
		stats.Users, stats.Games, stats.Owns, stats.Friends, stats.Duration)
}
