// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package graph

import (
	"github.com/tomtom215/gamegraph/internal/interest"
	"github.com/tomtom215/gamegraph/internal/models"
)

// Graph is the user/game interest graph. It owns every node.
type Graph struct {
	nodes []Node
	users map[models.UserID]NodeID
	games map[models.GameID]NodeID
	order []models.UserID

	edges           int
	skippedRecords  int
	danglingFriends int
}

// Stats describes the shape of a built graph.
type Stats struct {
	Users           int `json:"users"`
	Games           int `json:"games"`
	Edges           int `json:"edges"`
	SkippedRecords  int `json:"skipped_records"`
	DanglingFriends int `json:"dangling_friends"`
}

// Options controls graph construction.
type Options struct {
	// MinPlaytime drops ownership records whose playtime does not exceed it.
	// Zero keeps every record; the crawler has usually filtered already.
	MinPlaytime int
}

// Option configures Build.
type Option func(*Options)

// WithMinPlaytime drops ownership records with playtime <= minutes.
func WithMinPlaytime(minutes int) Option {
	return func(o *Options) {
		if minutes > 0 {
			o.MinPlaytime = minutes
		}
	}
}

// Build materializes the graph from the input tables.
//
// Every user of the adjacency table becomes a user node. Ownership records
// resolve to a shared game node whose profile is updated with the owner's
// playtime, and the game is linked to the owner. Friend edges are added once
// all game edges exist; friends outside the adjacency table are skipped.
//
// Build performs no I/O and never fails. Missing metadata yields a game with
// no labels.
func Build(tables *models.Tables, idx *interest.Index, opts ...Option) *Graph {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}

	users := tables.Users()
	g := &Graph{
		nodes: make([]Node, 0, len(users)*2),
		users: make(map[models.UserID]NodeID, len(users)),
		games: make(map[models.GameID]NodeID),
		order: users,
	}

	for _, uid := range users {
		u := g.addNode(newUserNode(uid))
		g.users[uid] = u

		for _, rec := range tables.OwnedGames[uid] {
			if o.MinPlaytime > 0 && rec.PlaytimeMinutes <= o.MinPlaytime {
				g.skippedRecords++
				continue
			}
			gid := g.gameNode(rec.GameID)
			g.nodes[gid].applyOwnership(idx.Labels(rec.GameID), rec.PlaytimeMinutes)
			g.link(u, gid)
		}
	}

	for _, uid := range users {
		u := g.users[uid]
		for _, fid := range tables.Friends[uid] {
			f, ok := g.users[fid]
			if !ok {
				g.danglingFriends++
				continue
			}
			g.link(u, f)
		}
	}

	return g
}

func (g *Graph) addNode(n Node) NodeID {
	g.nodes = append(g.nodes, n)
	return NodeID(len(g.nodes) - 1)
}

// gameNode resolves the shared node for a game id, creating it on first use.
func (g *Graph) gameNode(id models.GameID) NodeID {
	if nid, ok := g.games[id]; ok {
		return nid
	}
	nid := g.addNode(newGameNode(id))
	g.games[id] = nid
	return nid
}

func (g *Graph) link(from, to NodeID) {
	g.nodes[from].Neighbors = append(g.nodes[from].Neighbors, to)
	g.edges++
}

// Node returns the node for a handle. The pointer is valid for the lifetime
// of the graph; callers must not mutate it after propagation.
func (g *Graph) Node(id NodeID) *Node {
	return &g.nodes[id]
}

// User returns the handle of a user node.
func (g *Graph) User(id models.UserID) (NodeID, bool) {
	nid, ok := g.users[id]
	return nid, ok
}

// Game returns the handle of a game node.
func (g *Graph) Game(id models.GameID) (NodeID, bool) {
	nid, ok := g.games[id]
	return nid, ok
}

// Users returns user ids in build order.
func (g *Graph) Users() []models.UserID {
	return g.order
}

// Profile returns a user's propagated profile.
func (g *Graph) Profile(id models.UserID) (Profile, bool) {
	nid, ok := g.users[id]
	if !ok {
		return nil, false
	}
	return g.nodes[nid].Profile, true
}

// OwnedCount returns the number of game edges of a user.
func (g *Graph) OwnedCount(id models.UserID) int {
	nid, ok := g.users[id]
	if !ok {
		return 0
	}
	count := 0
	for _, nb := range g.nodes[nid].Neighbors {
		if g.nodes[nb].Kind == KindGame {
			count++
		}
	}
	return count
}

// Friends returns the ids of a user's friends that are part of the graph.
func (g *Graph) Friends(id models.UserID) []models.UserID {
	nid, ok := g.users[id]
	if !ok {
		return nil
	}
	var friends []models.UserID
	for _, nb := range g.nodes[nid].Neighbors {
		if g.nodes[nb].Kind == KindUser {
			friends = append(friends, g.nodes[nb].ID)
		}
	}
	return friends
}

// OwnedGames returns the game ids linked to a user, in edge order.
func (g *Graph) OwnedGames(id models.UserID) []models.GameID {
	nid, ok := g.users[id]
	if !ok {
		return nil
	}
	var games []models.GameID
	for _, nb := range g.nodes[nid].Neighbors {
		if g.nodes[nb].Kind == KindGame {
			games = append(games, g.nodes[nb].GameID)
		}
	}
	return games
}

// UserCount returns the number of user nodes.
func (g *Graph) UserCount() int { return len(g.users) }

// GameCount returns the number of game nodes.
func (g *Graph) GameCount() int { return len(g.games) }

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Stats returns counters collected while building.
func (g *Graph) Stats() Stats {
	return Stats{
		Users:           len(g.users),
		Games:           len(g.games),
		Edges:           g.edges,
		SkippedRecords:  g.skippedRecords,
		DanglingFriends: g.danglingFriends,
	}
}
