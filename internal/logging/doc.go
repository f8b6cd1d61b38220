// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

/*
Package logging provides the zerolog logger shared by every Gamegraph component.

The global logger is configured once from config.LoggingConfig:

	logging.Init(logging.Config{Level: "info", Format: "json"})
	logging.Info().Str("root", root).Msg("engine ready")

Components receive a child logger carrying their name:

	crawlLog := logging.WithComponent("crawler")

HTTP handlers and long-running jobs log through the context so request and
crawl ids are attached automatically:

	ctx = logging.ContextWithRequestID(ctx, logging.GenerateRequestID())
	logging.Ctx(ctx).Warn().Err(err).Msg("unknown user")

SlogHandler bridges zerolog to log/slog for libraries that only accept a
*slog.Logger, such as sutureslog in the supervisor tree.

Always terminate event chains with Msg or Send; an unterminated chain is
never written.
*/
package logging
