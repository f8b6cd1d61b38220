// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Steam Web API Metrics
	SteamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steam_requests_total",
			Help: "Total number of Steam Web API calls",
		},
		[]string{"endpoint", "result"}, // result: "success", "error"
	)

	SteamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "steam_request_duration_seconds",
			Help:    "Steam Web API call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	SteamDetailCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steam_detail_cache_total",
			Help: "Game detail cache lookups during crawls",
		},
		[]string{"result"}, // "hit", "miss"
	)

	CrawlDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crawl_duration_seconds",
			Help:    "Duration of friend network crawls in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800}, // Crawls are bounded by upstream rate limits
		},
	)

	CrawlUsers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crawl_users_total",
			Help: "Total number of users visited by crawls",
		},
	)

	CrawlErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crawl_errors_total",
			Help: "Total number of failed crawls",
		},
	)

	// Graph Metrics
	GraphBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graph_build_duration_seconds",
			Help:    "Duration of interest graph build and propagation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	GraphBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_builds_total",
			Help: "Total number of engine builds",
		},
		[]string{"result"},
	)

	GraphUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graph_users",
			Help: "Number of user nodes in the published graph",
		},
	)

	GraphGames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graph_games",
			Help: "Number of game nodes in the published graph",
		},
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graph_edges",
			Help: "Number of directed edges in the published graph",
		},
	)

	GraphLastBuild = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graph_last_build_timestamp",
			Help: "Unix timestamp of the last published graph",
		},
	)

	// Snapshot Metrics
	SnapshotOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_operations_total",
			Help: "Total number of snapshot store operations",
		},
		[]string{"operation", "result"},
	)

	// Export Metrics
	GraphExportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graph_export_duration_seconds",
			Help:    "Duration of graph exports to Neo4j in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	GraphExportRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_export_records_total",
			Help: "Total number of nodes and relationships exported",
		},
		[]string{"kind"}, // "user", "game", "owns", "friend"
	)

	GraphExportErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "graph_export_errors_total",
			Help: "Total number of failed graph exports",
		},
	)

	// Recommendation Metrics
	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of answered recommendation queries",
		},
		[]string{"kind", "result"}, // kind: "similar", "games", "genres", "report"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSteamRequest records one upstream call.
func RecordSteamRequest(endpoint string, duration time.Duration, err error) {
	SteamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	SteamRequestsTotal.WithLabelValues(endpoint, resultLabel(err)).Inc()
}

// RecordDetailCache records a detail cache lookup.
func RecordDetailCache(hit bool) {
	if hit {
		SteamDetailCache.WithLabelValues("hit").Inc()
		return
	}
	SteamDetailCache.WithLabelValues("miss").Inc()
}

// RecordCrawl records a finished crawl.
func RecordCrawl(duration time.Duration, users int, err error) {
	CrawlDuration.Observe(duration.Seconds())
	CrawlUsers.Add(float64(users))
	if err != nil {
		CrawlErrors.Inc()
	}
}

// RecordGraphBuild records an engine build. Size gauges only move on success
// so they always describe the graph being served.
func RecordGraphBuild(duration time.Duration, users, games, edges int, err error) {
	GraphBuildDuration.Observe(duration.Seconds())
	GraphBuilds.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return
	}
	GraphUsers.Set(float64(users))
	GraphGames.Set(float64(games))
	GraphEdges.Set(float64(edges))
	GraphLastBuild.Set(float64(time.Now().Unix()))
}

// RecordSnapshotOperation records a snapshot store operation.
func RecordSnapshotOperation(operation string, err error) {
	SnapshotOperations.WithLabelValues(operation, resultLabel(err)).Inc()
}

// RecordExport records a Neo4j export.
func RecordExport(duration time.Duration, counts map[string]int, err error) {
	GraphExportDuration.Observe(duration.Seconds())
	if err != nil {
		GraphExportErrors.Inc()
		return
	}
	for kind, n := range counts {
		GraphExportRecords.WithLabelValues(kind).Add(float64(n))
	}
}

// RecordRecommendation records an answered recommendation query.
func RecordRecommendation(kind string, err error) {
	Recommendations.WithLabelValues(kind, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
