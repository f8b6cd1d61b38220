// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package models

import (
	"sort"
	"time"
)

// UserID is a Steam 64-bit account identifier in its decimal string form.
type UserID = string

// GameID is a Steam application id.
type GameID = int

// OwnedGame is a single ownership record from the owned-games endpoint.
type OwnedGame struct {
	GameID          GameID `json:"appid"`
	PlaytimeMinutes int    `json:"playtime_forever"`
}

// Genre is a store genre entry. Description is the human-readable label.
type Genre struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// GameDetail is the subset of store metadata Gamegraph consumes.
type GameDetail struct {
	Name   string  `json:"name"`
	Genres []Genre `json:"genres,omitempty"`
}

// GenreLabels returns the genre descriptions in store order.
// A nil detail yields no labels.
func (d *GameDetail) GenreLabels() []string {
	if d == nil || len(d.Genres) == 0 {
		return nil
	}
	labels := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		if g.Description == "" {
			continue
		}
		labels = append(labels, g.Description)
	}
	return labels
}

// Tables holds the three frozen input tables produced by a crawl.
//
// Friends is the adjacency table and defines the user set. OwnedGames and Details
// may reference ids outside the crawl; consumers treat those as absent.
// A nil entry in Details means the metadata lookup failed upstream.
type Tables struct {
	Friends    map[UserID][]UserID    `json:"user_friend_graph"`
	OwnedGames map[UserID][]OwnedGame `json:"user_game_mapping"`
	Details    map[GameID]*GameDetail `json:"game_detail"`
	Order      []UserID               `json:"crawl_order,omitempty"`
	Root       UserID                 `json:"root,omitempty"`
	MaxDepth   int                    `json:"max_depth,omitempty"`
	CrawledAt  time.Time              `json:"crawled_at,omitempty"`
}

// NewTables returns empty, non-nil tables.
func NewTables() *Tables {
	return &Tables{
		Friends:    make(map[UserID][]UserID),
		OwnedGames: make(map[UserID][]OwnedGame),
		Details:    make(map[GameID]*GameDetail),
	}
}

// Users returns the user ids of the adjacency table in a deterministic order.
// The recorded crawl order is used when present; users missing from it are
// appended in sorted order.
func (t *Tables) Users() []UserID {
	users := make([]UserID, 0, len(t.Friends))
	seen := make(map[UserID]struct{}, len(t.Friends))
	for _, id := range t.Order {
		if _, ok := t.Friends[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		users = append(users, id)
	}

	rest := make([]UserID, 0, len(t.Friends)-len(users))
	for id := range t.Friends {
		if _, ok := seen[id]; !ok {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(users, rest...)
}

// RootUser returns the crawl root, falling back to the first user in order.
func (t *Tables) RootUser() UserID {
	if t.Root != "" {
		if _, ok := t.Friends[t.Root]; ok {
			return t.Root
		}
	}
	if users := t.Users(); len(users) > 0 {
		return users[0]
	}
	return ""
}

// HasUser reports whether id is part of the adjacency table.
func (t *Tables) HasUser(id UserID) bool {
	_, ok := t.Friends[id]
	return ok
}

// GameIDs returns every distinct game id owned by a user in the table, sorted.
func (t *Tables) GameIDs() []GameID {
	seen := make(map[GameID]struct{})
	for _, games := range t.OwnedGames {
		for _, g := range games {
			seen[g.GameID] = struct{}{}
		}
	}
	ids := make([]GameID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
