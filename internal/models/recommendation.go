// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package models

// SimilarUser is a ranked user with its cosine similarity to the requesting user.
type SimilarUser struct {
	UserID     UserID  `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// RecommendedGame is an ownership record enriched with the game name.
type RecommendedGame struct {
	GameID          GameID `json:"game_id"`
	Name            string `json:"name,omitempty"`
	PlaytimeMinutes int    `json:"playtime_minutes"`
}

// RecommendedGenre is an interest label with its aggregated score.
type RecommendedGenre struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Report bundles the three answers produced for one user.
type Report struct {
	UserID       UserID             `json:"user_id"`
	SimilarUsers []SimilarUser      `json:"similar_users"`
	BestMatch    UserID             `json:"best_match,omitempty"`
	Games        []RecommendedGame  `json:"games"`
	Genres       []RecommendedGenre `json:"genres"`
}

// GraphStats summarizes a built interest graph.
type GraphStats struct {
	Users         int    `json:"users"`
	Games         int    `json:"games"`
	Edges         int    `json:"edges"`
	Root          UserID `json:"root"`
	Visited       int    `json:"visited"`
	Aggregated    int    `json:"aggregated"`
	BuildMS       int64  `json:"build_ms"`
	PropagationMS int64  `json:"propagation_ms"`
}
