// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package steam

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		APIKey:            "test-key",
		APIURL:            server.URL,
		StoreURL:          server.URL,
		RequestsPerSecond: 1000,
		Burst:             100,
		Timeout:           5 * time.Second,
	}, zerolog.Nop())
}

func TestClientOwnedGames(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/IPlayerService/GetOwnedGames/v1/" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("key") != "test-key" || r.URL.Query().Get("steamid") != "76561198000000001" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"response":{"game_count":2,"games":[{"appid":570,"playtime_forever":4000,"img_icon_url":"x"},{"appid":730,"playtime_forever":12}]}}`))
	})

	games, err := client.OwnedGames(context.Background(), "76561198000000001")
	if err != nil {
		t.Fatalf("OwnedGames() error = %v", err)
	}
	if len(games) != 2 || games[0].GameID != 570 || games[0].PlaytimeMinutes != 4000 {
		t.Errorf("OwnedGames() = %+v", games)
	}
}

func TestClientOwnedGamesPrivateLibrary(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{}}`))
	})

	games, err := client.OwnedGames(context.Background(), "1")
	if err != nil {
		t.Fatalf("OwnedGames() error = %v", err)
	}
	if games == nil || len(games) != 0 {
		t.Errorf("OwnedGames() = %#v, want empty non-nil slice", games)
	}
}

func TestClientFriendList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ISteamUser/GetFriendList/v0001/" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("relationship") != "friend" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"friendslist":{"friends":[
			{"steamid":"2","relationship":"friend","friend_since":1},
			{"steamid":"","relationship":"friend"},
			{"steamid":"3","relationship":"friend","friend_since":2}]}}`))
	})

	friends, err := client.FriendList(context.Background(), "1")
	if err != nil {
		t.Fatalf("FriendList() error = %v", err)
	}
	if len(friends) != 2 || friends[0] != "2" || friends[1] != "3" {
		t.Errorf("FriendList() = %v, want [2 3]", friends)
	}
}

func TestClientFriendListPrivateProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.FriendList(context.Background(), "1")
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("FriendList() error = %v, want 401 status error", err)
	}
}

func TestClientAppDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/appdetails" {
			http.NotFound(w, r)
			return
		}
		switch r.URL.Query().Get("appids") {
		case "570":
			w.Write([]byte(`{"570":{"success":true,"data":{"type":"game","name":"Dota 2","genres":[{"id":"1","description":"Action"},{"id":"2","description":"Strategy"}]}}}`))
		default:
			w.Write([]byte(`{"` + r.URL.Query().Get("appids") + `":{"success":false}}`))
		}
	})

	detail, err := client.AppDetails(context.Background(), 570)
	if err != nil {
		t.Fatalf("AppDetails() error = %v", err)
	}
	if detail == nil || detail.Name != "Dota 2" || len(detail.GenreLabels()) != 2 {
		t.Errorf("AppDetails() = %+v", detail)
	}

	detail, err = client.AppDetails(context.Background(), 999)
	if err != nil {
		t.Fatalf("AppDetails(999) error = %v", err)
	}
	if detail != nil {
		t.Errorf("AppDetails(999) = %+v, want nil", detail)
	}
}

func TestClientErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := client.OwnedGames(context.Background(), "1")
		if !IsStatus(err, http.StatusInternalServerError) {
			t.Errorf("error = %v, want 500 status error", err)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		})
		if _, err := client.OwnedGames(context.Background(), "1"); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := client.FriendList(ctx, "1"); err == nil {
			t.Error("expected error for canceled context")
		}
	})
}

func TestClientCircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if _, err := client.OwnedGames(ctx, "1"); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	_, err := client.OwnedGames(ctx, "1")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if calls.Load() != 10 {
		t.Errorf("upstream calls = %d, want 10", calls.Load())
	}
	if client.BreakerState() != "open" {
		t.Errorf("BreakerState() = %q, want open", client.BreakerState())
	}
}

func TestClientPrivateProfilesDoNotTripBreaker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	for i := 0; i < 15; i++ {
		client.FriendList(context.Background(), "1")
	}
	if client.BreakerState() != "closed" {
		t.Errorf("BreakerState() = %q, want closed", client.BreakerState())
	}
}
