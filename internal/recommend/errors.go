// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package recommend

import "errors"

// ErrUnknownUser is returned when a query names a user outside the crawled graph.
var ErrUnknownUser = errors.New("unknown user")
