// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package recommend

import (
	"sync/atomic"
)

// Holder publishes the engine currently being served. Readers never observe a
// partially built engine: a rebuild replaces the pointer in one store.
type Holder struct {
	current atomic.Pointer[Engine]
}

// Engine returns the published engine, or nil before the first build.
func (h *Holder) Engine() *Engine {
	return h.current.Load()
}

// Publish replaces the served engine and returns the previous one.
func (h *Holder) Publish(e *Engine) *Engine {
	return h.current.Swap(e)
}

// Ready reports whether an engine has been published.
func (h *Holder) Ready() bool {
	return h.current.Load() != nil
}
