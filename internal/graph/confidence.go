// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package graph

import (
	"math"
)

// Confidence maps playtime in minutes to a weight in (0.5, 1.0].
//
//	confidence = 0.5 * sigmoid(0.001 * playtime) + 0.5
//
// Zero playtime yields exactly 0.75. Large playtimes round to exactly 1.0.
func Confidence(playtimeMinutes int) float64 {
	return 0.5*sigmoid(0.001*float64(playtimeMinutes)) + 0.5
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// applyOwnership folds one owner's playtime into a game node's profile.
//
// The first owner sets every label to its confidence. Later owners update a
// single running mean seeded from the first label's current weight, and that
// mean is written back to every label: labels of one game never diverge.
func (n *Node) applyOwnership(labels []string, playtimeMinutes int) {
	c := Confidence(playtimeMinutes)

	if n.OwnerCount == 0 {
		n.OwnerCount = 1
		n.Profile = uniformProfile(labels, c)
		return
	}

	before := n.OwnerCount
	n.OwnerCount++

	if len(n.Profile) == 0 {
		return
	}

	prior := n.Profile[0].Weight
	score := (prior*float64(before) + c) / float64(n.OwnerCount)
	n.Profile = uniformProfile(labels, score)
}
