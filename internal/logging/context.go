// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	crawlIDKey   contextKey = "crawl_id"
	loggerKey    contextKey = "logger"
)

// GenerateRequestID creates a new unique request ID (a full UUID).
func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateCrawlID creates a short id for one crawl or engine build.
func GenerateCrawlID() string {
	return uuid.New().String()[:8]
}

// ContextWithRequestID returns a new context with the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ContextWithCrawlID returns a new context with the given crawl ID.
func ContextWithCrawlID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, crawlIDKey, id)
}

// CrawlIDFromContext returns the crawl ID, or "" when absent.
func CrawlIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(crawlIDKey).(string)
	return id
}

// ContextWithLogger stores a logger in the context.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Ctx returns the context's logger (or the global one) with request_id and
// crawl_id attached when present.
//
//	logging.Ctx(ctx).Info().Msg("similar users computed")
func Ctx(ctx context.Context) *zerolog.Logger {
	logger, ok := ctx.Value(loggerKey).(zerolog.Logger)
	if !ok {
		logger = Logger()
	}

	lctx := logger.With()
	if id := RequestIDFromContext(ctx); id != "" {
		lctx = lctx.Str("request_id", id)
	}
	if id := CrawlIDFromContext(ctx); id != "" {
		lctx = lctx.Str("crawl_id", id)
	}
	l := lctx.Logger()
	return &l
}
