// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package graph

// FriendDiscount scales interests that arrive through a friend relative to a
// directly owned game.
const FriendDiscount = 0.8

type accumulator struct {
	sum   float64
	count int
}

// Aggregate combines neighbor profiles into a single profile.
//
// Game weights count in full and user weights are scaled by FriendDiscount.
// Each label's result is the arithmetic mean of its contributions, so no
// single neighbor dominates. Labels appear in first-seen order, games first.
func Aggregate(nodes []*Node) Profile {
	order := make([]string, 0)
	acc := make(map[string]*accumulator)

	add := func(label string, weight float64) {
		a, ok := acc[label]
		if !ok {
			a = &accumulator{}
			acc[label] = a
			order = append(order, label)
		}
		a.sum += weight
		a.count++
	}

	for _, n := range nodes {
		if !n.IsGame() {
			continue
		}
		for _, s := range n.Profile {
			add(s.Label, s.Weight)
		}
	}
	for _, n := range nodes {
		if n.IsGame() {
			continue
		}
		for _, s := range n.Profile {
			add(s.Label, s.Weight*FriendDiscount)
		}
	}

	if len(order) == 0 {
		return nil
	}

	out := make(Profile, len(order))
	for i, label := range order {
		a := acc[label]
		out[i] = InterestScore{Label: label, Weight: a.sum / float64(a.count)}
	}
	return out
}
