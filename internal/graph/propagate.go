// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package graph

import (
	"errors"
	"fmt"

	"github.com/tomtom215/gamegraph/internal/models"
)

// ErrUnknownNode is returned when a walk starts from a user not in the graph.
var ErrUnknownNode = errors.New("graph: unknown user")

// PropagationStats reports how much of the graph a walk touched.
type PropagationStats struct {
	// Visited is the number of user nodes marked by the walk.
	Visited int `json:"visited"`
	// Aggregated is the number of neighbor profiles fed to the aggregator.
	Aggregated int `json:"aggregated"`
}

// walker carries the visited set of one propagation.
type walker struct {
	g       *Graph
	visited map[NodeID]struct{}
	stats   PropagationStats
}

func newWalker(g *Graph) *walker {
	return &walker{
		g:       g,
		visited: make(map[NodeID]struct{}, len(g.users)),
	}
}

// Propagate computes profiles for every user reachable from root.
func Propagate(g *Graph, root models.UserID) (PropagationStats, error) {
	nid, ok := g.users[root]
	if !ok {
		return PropagationStats{}, fmt.Errorf("%w: %s", ErrUnknownNode, root)
	}
	w := newWalker(g)
	w.visit(nid)
	return w.stats, nil
}

// PropagateAll walks from root first and then from every user the earlier
// walks did not reach, in build order. The visited set is shared, so each
// profile is computed exactly once. An empty root starts from the first user.
func PropagateAll(g *Graph, root models.UserID) (PropagationStats, error) {
	w := newWalker(g)

	if root != "" {
		nid, ok := g.users[root]
		if !ok {
			return PropagationStats{}, fmt.Errorf("%w: %s", ErrUnknownNode, root)
		}
		w.visit(nid)
	}

	for _, uid := range g.order {
		nid := g.users[uid]
		if _, seen := w.visited[nid]; seen {
			continue
		}
		w.visit(nid)
	}
	return w.stats, nil
}

// visit computes the profile of id from its not-yet-visited neighbors.
// Leaves keep their existing profile and are never marked.
func (w *walker) visit(id NodeID) {
	n := &w.g.nodes[id]
	if len(n.Neighbors) == 0 {
		return
	}

	w.visited[id] = struct{}{}
	w.stats.Visited++

	inputs := make([]*Node, 0, len(n.Neighbors))
	for _, nb := range n.Neighbors {
		if _, seen := w.visited[nb]; seen {
			continue
		}
		w.visit(nb)
		inputs = append(inputs, &w.g.nodes[nb])
	}

	w.stats.Aggregated += len(inputs)
	n.Profile = Aggregate(inputs)
}
