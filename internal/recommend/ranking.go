// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/gamegraph/internal/graph"
	"github.com/tomtom215/gamegraph/internal/models"
)

// CosineSimilarity returns the cosine of the angle between two profiles.
// Labels missing from one side count as zero. If either profile has zero
// magnitude the similarity is 0.
func CosineSimilarity(a, b graph.Profile) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	weights := b.Map()
	var dot, magA, magB float64
	for _, s := range a {
		dot += s.Weight * weights[s.Label]
		magA += s.Weight * s.Weight
	}
	for _, s := range b {
		magB += s.Weight * s.Weight
	}

	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// MostSimilarUsers ranks every other user that owns at least one game by
// similarity to root. Ties keep build order.
func MostSimilarUsers(g *graph.Graph, root models.UserID, k int) ([]models.SimilarUser, error) {
	rootProfile, ok := g.Profile(root)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, root)
	}
	if k <= 0 {
		return []models.SimilarUser{}, nil
	}

	users := g.Users()
	ranked := make([]models.SimilarUser, 0, len(users))
	for _, uid := range users {
		if uid == root || g.OwnedCount(uid) == 0 {
			continue
		}
		p, _ := g.Profile(uid)
		ranked = append(ranked, models.SimilarUser{
			UserID:     uid,
			Similarity: CosineSimilarity(rootProfile, p),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})
	return truncate(ranked, k), nil
}

// MostPlayedGames orders ownership records by playtime. The input is not modified.
func MostPlayedGames(games []models.OwnedGame, n int) []models.OwnedGame {
	if n <= 0 {
		return []models.OwnedGame{}
	}
	ranked := make([]models.OwnedGame, len(games))
	copy(ranked, games)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PlaytimeMinutes > ranked[j].PlaytimeMinutes
	})
	return truncate(ranked, n)
}

// TopGenres orders the labels of a profile by weight.
func TopGenres(p graph.Profile, n int) []models.RecommendedGenre {
	if n <= 0 {
		return []models.RecommendedGenre{}
	}
	ranked := make([]models.RecommendedGenre, len(p))
	for i, s := range p {
		ranked[i] = models.RecommendedGenre{Label: s.Label, Score: s.Weight}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return truncate(ranked, n)
}

func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
