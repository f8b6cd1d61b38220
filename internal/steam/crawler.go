// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package steam

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gamegraph/internal/metrics"
	"github.com/tomtom215/gamegraph/internal/models"
)

// API is the upstream surface the crawler needs. *Client implements it.
type API interface {
	OwnedGames(ctx context.Context, user models.UserID) ([]models.OwnedGame, error)
	FriendList(ctx context.Context, user models.UserID) ([]models.UserID, error)
	AppDetails(ctx context.Context, id models.GameID) (*models.GameDetail, error)
}

// DetailCache stores game metadata between crawls. A cached nil detail
// records that the store has no data for the game.
type DetailCache interface {
	Detail(ctx context.Context, id models.GameID) (*models.GameDetail, bool, error)
	PutDetail(ctx context.Context, id models.GameID, detail *models.GameDetail) error
}

// CrawlConfig bounds a crawl.
type CrawlConfig struct {
	// MaxDepth is the number of friend hops followed from the root.
	// Default: 1
	MaxDepth int

	// MinPlaytime drops owned games played for this many minutes or less.
	// Default: 600
	MinPlaytime int
}

// DefaultCrawlConfig returns the default crawl bounds.
func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{MaxDepth: 1, MinPlaytime: 600}
}

// Crawler assembles input tables by walking the friend network.
type Crawler struct {
	api    API
	cache  DetailCache
	cfg    CrawlConfig
	logger zerolog.Logger
}

// NewCrawler creates a crawler. cache may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCrawler(api API, cache DetailCache, cfg CrawlConfig, logger zerolog.Logger) *Crawler {
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	if cfg.MinPlaytime < 0 {
		cfg.MinPlaytime = 0
	}
	return &Crawler{
		api:    api,
		cache:  cache,
		cfg:    cfg,
		logger: logger.With().Str("component", "crawler").Logger(),
	}
}

type queued struct {
	id    models.UserID
	depth int
}

// Crawl visits root and its friends breadth-first up to MaxDepth hops.
//
// Every visited user becomes a key of the friend table. Users at the depth
// limit keep only friends that were already visited, so the friend table
// never references users outside the crawl. Upstream failures for a single
// user or game degrade to empty data; only context cancellation aborts.
func (c *Crawler) Crawl(ctx context.Context, root models.UserID) (_ *models.Tables, err error) {
	if root == "" {
		return nil, errors.New("root user is required")
	}

	start := time.Now()
	tables := models.NewTables()
	tables.Root = root
	tables.MaxDepth = c.cfg.MaxDepth
	defer func() {
		metrics.RecordCrawl(time.Since(start), len(tables.Order), err)
	}()

	visited := map[models.UserID]struct{}{root: {}}
	queue := []queued{{id: root, depth: 0}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("crawl canceled: %w", err)
		}

		cur := queue[0]
		queue = queue[1:]
		tables.Order = append(tables.Order, cur.id)

		games, err := c.ownedGames(ctx, cur.id)
		if err != nil {
			return nil, err
		}
		tables.OwnedGames[cur.id] = games

		for _, g := range games {
			if _, seen := tables.Details[g.GameID]; seen {
				continue
			}
			detail, err := c.detail(ctx, g.GameID)
			if err != nil {
				return nil, err
			}
			tables.Details[g.GameID] = detail
		}

		friends, err := c.friendList(ctx, cur.id)
		if err != nil {
			return nil, err
		}

		if cur.depth >= c.cfg.MaxDepth {
			known := make([]models.UserID, 0, len(friends))
			for _, f := range friends {
				if _, ok := tables.Friends[f]; ok {
					known = append(known, f)
				}
			}
			tables.Friends[cur.id] = known
			continue
		}

		tables.Friends[cur.id] = friends
		for _, f := range friends {
			if _, ok := visited[f]; ok {
				continue
			}
			visited[f] = struct{}{}
			queue = append(queue, queued{id: f, depth: cur.depth + 1})
		}
	}

	tables.CrawledAt = time.Now().UTC()
	c.logger.Info().
		Str("root", root).
		Int("users", len(tables.Order)).
		Int("games", len(tables.Details)).
		Dur("duration", time.Since(start)).
		Msg("Crawl complete")
	return tables, nil
}

// ownedGames fetches a user's games and keeps those above MinPlaytime.
func (c *Crawler) ownedGames(ctx context.Context, user models.UserID) ([]models.OwnedGame, error) {
	all, err := c.api.OwnedGames(ctx, user)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("crawl canceled: %w", ctx.Err())
		}
		c.logger.Warn().Err(err).Str("user", user).Msg("Owned games unavailable")
		return []models.OwnedGame{}, nil
	}

	kept := make([]models.OwnedGame, 0, len(all))
	for _, g := range all {
		if g.PlaytimeMinutes > c.cfg.MinPlaytime {
			kept = append(kept, g)
		}
	}
	return kept, nil
}

func (c *Crawler) friendList(ctx context.Context, user models.UserID) ([]models.UserID, error) {
	friends, err := c.api.FriendList(ctx, user)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("crawl canceled: %w", ctx.Err())
		}
		c.logger.Warn().Err(err).Str("user", user).Msg("Friend list unavailable")
		return []models.UserID{}, nil
	}
	return friends, nil
}

// detail resolves game metadata through the cache. Upstream errors yield a
// nil detail that is not cached, so the next crawl retries the game.
func (c *Crawler) detail(ctx context.Context, id models.GameID) (*models.GameDetail, error) {
	if c.cache != nil {
		d, ok, err := c.cache.Detail(ctx, id)
		if err != nil {
			c.logger.Warn().Err(err).Int("appid", id).Msg("Detail cache lookup failed")
		} else if ok {
			metrics.RecordDetailCache(true)
			return d, nil
		}
		metrics.RecordDetailCache(false)
	}

	d, err := c.api.AppDetails(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("crawl canceled: %w", ctx.Err())
		}
		c.logger.Warn().Err(err).Int("appid", id).Msg("Game details unavailable")
		return nil, nil
	}

	if c.cache != nil {
		if err := c.cache.PutDetail(ctx, id, d); err != nil {
			c.logger.Warn().Err(err).Int("appid", id).Msg("Detail cache write failed")
		}
	}
	return d, nil
}
