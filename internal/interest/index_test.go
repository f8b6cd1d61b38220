// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package interest

import (
	"reflect"
	"testing"

	"github.com/tomtom215/gamegraph/internal/models"
)

func TestIndex(t *testing.T) {
	idx := New(map[models.GameID]*models.GameDetail{
		10: {Name: "Ten", Genres: []models.Genre{{ID: "1", Description: "Action"}, {ID: "3", Description: "RPG"}}},
		20: {Name: "Twenty"},
		30: nil,
	})

	tests := []struct {
		name       string
		id         models.GameID
		wantLabels []string
		wantName   string
	}{
		{name: "genres in store order", id: 10, wantLabels: []string{"Action", "RPG"}, wantName: "Ten"},
		{name: "metadata without genres", id: 20, wantLabels: nil, wantName: "Twenty"},
		{name: "failed lookup", id: 30, wantLabels: nil, wantName: ""},
		{name: "absent entry", id: 40, wantLabels: nil, wantName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.Labels(tt.id); !reflect.DeepEqual(got, tt.wantLabels) {
				t.Errorf("Labels(%d) = %v, want %v", tt.id, got, tt.wantLabels)
			}
			if got := idx.Name(tt.id); got != tt.wantName {
				t.Errorf("Name(%d) = %q, want %q", tt.id, got, tt.wantName)
			}
		})
	}

	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
}
