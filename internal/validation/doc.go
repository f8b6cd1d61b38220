// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

/*
Package validation validates HTTP request parameters with go-playground/validator v10.

A single validator instance is created lazily and shared; it caches struct
metadata and is safe for concurrent use. Besides the built-in tags it registers:

  - userid: 1 to 64 visible ASCII characters, so Steam ids and imported
    cache keys both pass

Failures are returned as *RequestValidationError and convert to the API
envelope's error payload with code VALIDATION_ERROR:

	type similarQuery struct {
	    UserID string `validate:"required,userid"`
	    K      int    `validate:"min=0,max=100"`
	}

	if verr := validation.ValidateStruct(&q); verr != nil {
	    respondError(w, http.StatusBadRequest, verr.ToAPIError())
	    return
	}
*/
package validation
