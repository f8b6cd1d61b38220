// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

// Package interest derives the static interest labels of every game from the
// store metadata table.
//
// The index is built once from a frozen metadata table and is read-only
// afterwards, so a single instance can be shared by the graph builder and the
// recommender without synchronization.
//
// A game whose metadata is missing, or whose metadata carries no genres, has
// no labels. This is not an error.
package interest

import (
	"github.com/tomtom215/gamegraph/internal/models"
)

// Index maps game ids to their interest labels and display names.
type Index struct {
	labels map[models.GameID][]string
	names  map[models.GameID]string
}

// New builds an index from the metadata table.
func New(details map[models.GameID]*models.GameDetail) *Index {
	idx := &Index{
		labels: make(map[models.GameID][]string, len(details)),
		names:  make(map[models.GameID]string, len(details)),
	}
	for id, d := range details {
		if d == nil {
			continue
		}
		idx.names[id] = d.Name
		if labels := d.GenreLabels(); len(labels) > 0 {
			idx.labels[id] = labels
		}
	}
	return idx
}

// Labels returns the interest labels of a game in store order.
// The returned slice must not be modified.
func (x *Index) Labels(id models.GameID) []string {
	return x.labels[id]
}

// Name returns the display name of a game, or "" when unknown.
func (x *Index) Name(id models.GameID) string {
	return x.names[id]
}

// Len returns the number of games with metadata.
func (x *Index) Len() int {
	return len(x.names)
}
