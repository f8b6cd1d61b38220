// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

/*
Package middleware provides the chi-compatible HTTP middleware shared by the API:

  - RequestID: accepts or generates X-Request-ID and attaches it to the logging context
  - AccessLog: one zerolog line per request
  - PrometheusMetrics: request counts, durations and in-flight gauge

Metrics are labeled with the chi route pattern (for example
/api/v1/users/{userID}/similar) rather than the raw path, so user ids never
become label values.

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
