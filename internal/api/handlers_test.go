// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gamegraph/internal/models"
	"github.com/tomtom215/gamegraph/internal/recommend"
)

func testTables() *models.Tables {
	t := models.NewTables()
	t.Order = []models.UserID{"1", "2", "3"}
	t.Root = "1"
	t.Friends["1"] = []models.UserID{"2", "3"}
	t.Friends["2"] = []models.UserID{"1"}
	t.Friends["3"] = []models.UserID{"1"}
	t.OwnedGames["1"] = []models.OwnedGame{{GameID: 10, PlaytimeMinutes: 1000}}
	t.OwnedGames["2"] = []models.OwnedGame{{GameID: 10, PlaytimeMinutes: 500}, {GameID: 20, PlaytimeMinutes: 2000}}
	t.Details[10] = &models.GameDetail{Name: "Ten", Genres: []models.Genre{{ID: "1", Description: "Action"}}}
	t.Details[20] = &models.GameDetail{Name: "Twenty", Genres: []models.Genre{{ID: "3", Description: "RPG"}}}
	return t
}

// newTestRouter returns a router over a published engine, or an empty
// holder when ready is false.
func newTestRouter(t *testing.T, ready bool) http.Handler {
	t.Helper()
	if !ready {
		return routerFor(t, nil)
	}
	return routerFor(t, testTables())
}

// routerFor returns a router over an engine built from tables, or over an
// empty holder when tables is nil.
func routerFor(t *testing.T, tables *models.Tables) http.Handler {
	t.Helper()
	holder := &recommend.Holder{}
	if tables != nil {
		engine, err := recommend.NewEngine(tables, nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		holder.Publish(engine)
	}
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	return NewRouter(NewHandler(holder), cfg)
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doGet(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("GET %s: invalid JSON %q: %v", path, rec.Body.String(), err)
	}
	return rec, env
}

func TestSimilarUsers(t *testing.T) {
	router := newTestRouter(t, true)

	rec, env := doGet(t, router, "/api/v1/users/1/similar?k=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if env.Status != "success" {
		t.Errorf("Status = %q, want success", env.Status)
	}
	if env.Metadata.GraphRoot != "1" {
		t.Errorf("GraphRoot = %q, want 1", env.Metadata.GraphRoot)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}

	var users []models.SimilarUser
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(users) != 1 || users[0].UserID != "2" {
		t.Errorf("users = %+v, want [2]", users)
	}
}

func TestGamesDefaultSize(t *testing.T) {
	router := newTestRouter(t, true)

	rec, env := doGet(t, router, "/api/v1/users/2/games")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var games []models.RecommendedGame
	if err := json.Unmarshal(env.Data, &games); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("games = %+v, want 2", games)
	}
	if games[0].Name != "Twenty" || games[0].PlaytimeMinutes != 2000 {
		t.Errorf("games[0] = %+v, want Twenty/2000", games[0])
	}
}

func TestGenres(t *testing.T) {
	router := newTestRouter(t, true)

	rec, env := doGet(t, router, "/api/v1/users/1/genres?n=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var genres []models.RecommendedGenre
	if err := json.Unmarshal(env.Data, &genres); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(genres) != 1 || genres[0].Label != "Action" {
		t.Errorf("genres = %+v, want [Action]", genres)
	}
}

func TestRecommendations(t *testing.T) {
	router := newTestRouter(t, true)

	rec, env := doGet(t, router, "/api/v1/users/1/recommendations")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var report models.Report
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if report.UserID != "1" || report.BestMatch != "2" {
		t.Errorf("report = %+v, want user 1 best match 2", report)
	}
	if len(report.Games) == 0 || report.Games[0].Name != "Twenty" {
		t.Errorf("Games = %+v, want Twenty first", report.Games)
	}
}

func TestUnknownUser(t *testing.T) {
	router := newTestRouter(t, true)

	for _, path := range []string{
		"/api/v1/users/999/similar",
		"/api/v1/users/999/games",
		"/api/v1/users/999/genres",
		"/api/v1/users/999/recommendations",
	} {
		rec, env := doGet(t, router, path)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rec.Code)
			continue
		}
		if env.Error == nil || env.Error.Code != CodeUnknownUser {
			t.Errorf("GET %s error = %+v, want %s", path, env.Error, CodeUnknownUser)
		}
	}
}

// Imported cache files may key users by arbitrary strings.
func TestNonNumericUserIDs(t *testing.T) {
	tables := models.NewTables()
	tables.Order = []models.UserID{"A", "B"}
	tables.Root = "A"
	tables.Friends["A"] = []models.UserID{"B"}
	tables.Friends["B"] = []models.UserID{"A"}
	tables.OwnedGames["B"] = []models.OwnedGame{{GameID: 20, PlaytimeMinutes: 2000}}
	tables.Details[20] = &models.GameDetail{Name: "Twenty", Genres: []models.Genre{{ID: "3", Description: "RPG"}}}
	router := routerFor(t, tables)

	rec, env := doGet(t, router, "/api/v1/users/B/games")
	if rec.Code != http.StatusOK {
		t.Fatalf("known user status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	var games []models.RecommendedGame
	if err := json.Unmarshal(env.Data, &games); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(games) != 1 || games[0].Name != "Twenty" {
		t.Errorf("games = %+v, want [Twenty]", games)
	}

	rec, env = doGet(t, router, "/api/v1/users/bob/similar")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown user status = %d, want 404; body %s", rec.Code, rec.Body.String())
	}
	if env.Error == nil || env.Error.Code != CodeUnknownUser {
		t.Errorf("error = %+v, want %s", env.Error, CodeUnknownUser)
	}
}

func TestInvalidParameters(t *testing.T) {
	router := newTestRouter(t, true)

	tests := []struct {
		name  string
		path  string
		field string
	}{
		{"user id too long", "/api/v1/users/" + strings.Repeat("7", 65) + "/similar", "user_id"},
		{"user id with space", "/api/v1/users/al%20ice/games", "user_id"},
		{"non-numeric k", "/api/v1/users/1/similar?k=many", "k"},
		{"negative k", "/api/v1/users/1/similar?k=-1", "k"},
		{"n too large", "/api/v1/users/1/genres?n=5000", "n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doGet(t, router, tt.path)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
			if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
				t.Fatalf("error = %+v, want VALIDATION_ERROR", env.Error)
			}
			if got := env.Error.Details["field"]; got != tt.field {
				t.Errorf("field = %v, want %s", got, tt.field)
			}
		})
	}
}

func TestNotReady(t *testing.T) {
	router := newTestRouter(t, false)

	for _, path := range []string{"/api/v1/health/ready", "/api/v1/users/1/similar", "/api/v1/graph/stats"} {
		rec, env := doGet(t, router, path)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("GET %s status = %d, want 503", path, rec.Code)
			continue
		}
		if env.Error == nil || env.Error.Code != CodeNotReady {
			t.Errorf("GET %s error = %+v, want %s", path, env.Error, CodeNotReady)
		}
	}

	rec, _ := doGet(t, router, "/api/v1/health/live")
	if rec.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200 before the engine is ready", rec.Code)
	}
}

func TestGraphStats(t *testing.T) {
	router := newTestRouter(t, true)

	rec, env := doGet(t, router, "/api/v1/graph/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var stats models.GraphStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if stats.Games != 2 || stats.Root != "1" || stats.Edges == 0 {
		t.Errorf("stats = %+v, want 2 games and root 1", stats)
	}
}

func TestHealthReady(t *testing.T) {
	router := newTestRouter(t, true)

	rec, env := doGet(t, router, "/api/v1/health/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var health HealthStatus
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !health.Ready || health.Root != "1" || health.Games != 2 {
		t.Errorf("health = %+v, want ready with root 1 and 2 games", health)
	}
}

func TestNotFoundRoute(t *testing.T) {
	router := newTestRouter(t, true)

	rec, env := doGet(t, router, "/api/v1/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != CodeNotFound {
		t.Errorf("error = %+v, want %s", env.Error, CodeNotFound)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, true)
	doGet(t, router, "/api/v1/users/1/similar")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty metrics exposition")
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}
