// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered on the default registry at package init and exposed at
the /metrics endpoint in Prometheus text format:

	curl http://localhost:3857/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)
  - api_rate_limit_hits_total: Rejected by the rate limiter (counter)

Steam Web API Metrics:
  - steam_requests_total: Upstream calls (counter)
    Labels: endpoint, result
  - steam_request_duration_seconds: Upstream latency (histogram)
  - steam_detail_cache_total: Detail cache lookups (counter)
    Labels: result (hit, miss)
  - crawl_duration_seconds: Crawl duration (histogram)
  - crawl_users_total: Users visited by crawls (counter)

Graph Metrics:
  - graph_build_duration_seconds: Build and propagation time (histogram)
  - graph_builds_total: Engine builds (counter)
    Labels: result
  - graph_users, graph_games, graph_edges: Size of the published graph (gauge)
  - graph_last_build_timestamp: Unix time of the last published build (gauge)

Snapshot and Export Metrics:
  - snapshot_operations_total: Store operations (counter)
    Labels: operation, result
  - graph_export_duration_seconds: Neo4j export time (histogram)
  - graph_export_records_total: Exported records (counter)
    Labels: kind

Recommendation Metrics:
  - recommendations_total: Answered queries (counter)
    Labels: kind, result

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests through the breaker (counter)
    Labels: name, result
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
  - circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state
*/
package metrics
