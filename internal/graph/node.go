// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package graph

import (
	"strconv"

	"github.com/tomtom215/gamegraph/internal/models"
)

// NodeID is a handle into the graph's node arena.
type NodeID int

// Kind tags the node variant.
type Kind uint8

const (
	// KindUser is a user node. Its neighbors are owned games and friends.
	KindUser Kind = iota
	// KindGame is a game node shared by every owner of the game.
	KindGame
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindGame:
		return "game"
	default:
		return "unknown"
	}
}

// Node is a user or game vertex.
type Node struct {
	Kind Kind

	// ID is the user id, or the decimal appid for games.
	ID string

	// GameID is set for game nodes only.
	GameID models.GameID

	// Neighbors are handles of adjacent nodes in insertion order.
	Neighbors []NodeID

	// Profile is the node's interest profile. Empty for users until propagated.
	Profile Profile

	// OwnerCount is the number of ownership updates applied to a game node.
	OwnerCount int
}

// IsGame reports whether the node is a game node.
func (n *Node) IsGame() bool {
	return n.Kind == KindGame
}

func newUserNode(id models.UserID) Node {
	return Node{Kind: KindUser, ID: id}
}

func newGameNode(id models.GameID) Node {
	return Node{Kind: KindGame, ID: strconv.Itoa(id), GameID: id}
}

// InterestScore is a single label/weight pair of a profile.
type InterestScore struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// Profile maps interest labels to weights. Labels are unique and kept in
// insertion order so rankings over a profile break ties deterministically.
type Profile []InterestScore

// Weight returns the weight of label and whether it is present.
func (p Profile) Weight(label string) (float64, bool) {
	for _, s := range p {
		if s.Label == label {
			return s.Weight, true
		}
	}
	return 0, false
}

// Labels returns the labels in profile order.
func (p Profile) Labels() []string {
	labels := make([]string, len(p))
	for i, s := range p {
		labels[i] = s.Label
	}
	return labels
}

// Map returns the profile as a label -> weight map.
func (p Profile) Map() map[string]float64 {
	m := make(map[string]float64, len(p))
	for _, s := range p {
		m[s.Label] = s.Weight
	}
	return m
}

// Clone returns a copy that shares no memory with p.
func (p Profile) Clone() Profile {
	if p == nil {
		return nil
	}
	out := make(Profile, len(p))
	copy(out, p)
	return out
}

// uniformProfile assigns weight to every distinct label, keeping first occurrence order.
func uniformProfile(labels []string, weight float64) Profile {
	if len(labels) == 0 {
		return nil
	}
	p := make(Profile, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		p = append(p, InterestScore{Label: l, Weight: weight})
	}
	return p
}
