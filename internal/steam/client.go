// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package steam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/gamegraph/internal/metrics"
	"github.com/tomtom215/gamegraph/internal/models"
)

// Default upstream endpoints.
const (
	DefaultAPIURL   = "https://api.steampowered.com"
	DefaultStoreURL = "https://store.steampowered.com"
)

// maxResponseSize bounds upstream bodies; friend lists of large accounts are the biggest.
const maxResponseSize = 8 << 20

// Config configures a Client.
type Config struct {
	APIKey   string
	APIURL   string
	StoreURL string

	// RequestsPerSecond and Burst shape the token bucket shared by all calls.
	RequestsPerSecond float64
	Burst             int

	Timeout time.Duration
}

// Client is a rate-limited Steam Web API client. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	storeURL   string
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[[]byte]
	logger     zerolog.Logger
}

// NewClient creates a client. Zero values in cfg fall back to the public
// endpoints, one request per second and a 10 second timeout.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.StoreURL == "" {
		cfg.StoreURL = DefaultStoreURL
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	logger = logger.With().Str("component", "steam").Logger()
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		apiURL:     cfg.APIURL,
		storeURL:   cfg.StoreURL,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cb:         newBreaker("steam-api", logger),
		logger:     logger,
	}
}

type ownedGamesResponse struct {
	Response struct {
		GameCount int                `json:"game_count"`
		Games     []models.OwnedGame `json:"games"`
	} `json:"response"`
}

type friendListResponse struct {
	FriendsList struct {
		Friends []struct {
			SteamID      string `json:"steamid"`
			Relationship string `json:"relationship"`
		} `json:"friends"`
	} `json:"friendslist"`
}

type appDetailsEntry struct {
	Success bool               `json:"success"`
	Data    *models.GameDetail `json:"data"`
}

// OwnedGames returns every game a user owns with total playtime.
// Profiles that hide their library yield an empty list.
func (c *Client) OwnedGames(ctx context.Context, user models.UserID) ([]models.OwnedGame, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("steamid", user)
	q.Set("format", "json")
	q.Set("include_played_free_games", "1")

	var resp ownedGamesResponse
	if err := c.get(ctx, "owned_games", c.apiURL+"/IPlayerService/GetOwnedGames/v1/", q, &resp); err != nil {
		return nil, fmt.Errorf("owned games of %s: %w", user, err)
	}
	if resp.Response.Games == nil {
		return []models.OwnedGame{}, nil
	}
	return resp.Response.Games, nil
}

// FriendList returns the ids of a user's friends in upstream order.
func (c *Client) FriendList(ctx context.Context, user models.UserID) ([]models.UserID, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("steamid", user)
	q.Set("relationship", "friend")
	q.Set("format", "json")

	var resp friendListResponse
	if err := c.get(ctx, "friend_list", c.apiURL+"/ISteamUser/GetFriendList/v0001/", q, &resp); err != nil {
		return nil, fmt.Errorf("friend list of %s: %w", user, err)
	}

	friends := make([]models.UserID, 0, len(resp.FriendsList.Friends))
	for _, f := range resp.FriendsList.Friends {
		if f.SteamID == "" {
			continue
		}
		friends = append(friends, f.SteamID)
	}
	return friends, nil
}

// AppDetails returns store metadata for a game. A nil detail with a nil
// error means the store has no data for the game.
func (c *Client) AppDetails(ctx context.Context, id models.GameID) (*models.GameDetail, error) {
	key := strconv.Itoa(id)
	q := url.Values{}
	q.Set("appids", key)
	q.Set("filters", "basic,genres")

	var resp map[string]appDetailsEntry
	if err := c.get(ctx, "app_details", c.storeURL+"/api/appdetails", q, &resp); err != nil {
		return nil, fmt.Errorf("app details of %d: %w", id, err)
	}

	entry, ok := resp[key]
	if !ok || !entry.Success {
		c.logger.Debug().Int("appid", id).Msg("No store data for game")
		return nil, nil
	}
	return entry.Data, nil
}

// get performs a rate-limited, breaker-protected GET and decodes the body.
func (c *Client) get(ctx context.Context, endpoint, rawURL string, query url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	body, err := c.execute(func() ([]byte, error) {
		return c.fetch(ctx, rawURL, query)
	})
	metrics.RecordSteamRequest(endpoint, time.Since(start), err)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// StatusError reports a non-200 upstream response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, http.StatusText(e.Code))
}

// IsStatus reports whether err carries the given upstream status code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
