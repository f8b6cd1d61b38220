// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

/*
Package api serves the recommendation engine over HTTP with the chi router.

# Endpoints

	GET /api/v1/health/live                      process is up
	GET /api/v1/health/ready                     an engine has been published
	GET /api/v1/users/{userID}/similar?k=3       most similar users
	GET /api/v1/users/{userID}/games?n=5         most played games
	GET /api/v1/users/{userID}/genres?n=5        top interest labels
	GET /api/v1/users/{userID}/recommendations   the three answers in one call
	GET /api/v1/graph/stats                      size of the served graph
	GET /metrics                                 Prometheus exposition

Every JSON response uses the models.APIResponse envelope. Unknown users yield
404 UNKNOWN_USER; until the first engine is published data endpoints yield
503 NOT_READY. Requests read the engine once from the recommend.Holder, so a
concurrent rebuild never mixes two graphs in one response.

# Middleware

Global: request id, panic recovery, CORS (go-chi/cors), access log and
Prometheus metrics. Data routes are additionally rate limited per client IP
with go-chi/httprate; health routes get a more permissive limit.
*/
package api
