// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"user_id": "76561198000000001", "similarity": 0.93}],
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 1}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "UNKNOWN_USER", "message": "user is not part of the crawled graph"},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	GraphRoot   string    `json:"graph_root,omitempty"`
}

// APIError is the error payload of an APIResponse.
//
// Common error codes:
//   - VALIDATION_ERROR: query parameters failed validation
//   - UNKNOWN_USER: the user id is not part of the crawled graph
//   - NOT_READY: the engine has not finished building
//   - INTERNAL_ERROR: unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
