// Package crcon is a typed client for the CRCON server administration API.
// All persistent state (bans, ping thresholds, schedules) is owned by the
// remote server; this package only shapes requests and responses.
package crcon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	// Autokick bounds enforced before any request is made.
	minPing = 1
	maxPing = 10000

	// recentBanLimit caps how many temp bans RecentBans returns.
	recentBanLimit = 5

	healthTimeout = 5 * time.Second
)

// timeOfDayRe matches zero-padded 24h clock times ("09:05", not "9:5").
var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// API is the surface command handlers depend on, so tests can substitute
// a fake for the HTTP client.
type API interface {
	RecentBans(ctx context.Context) ([]Ban, error)
	PlayerName(ctx context.Context, playerID string) (string, error)
	Unban(ctx context.Context, playerID string) error
	MaxPing(ctx context.Context) (int, error)
	SetMaxPing(ctx context.Context, ms int) error
	ScheduledJobs(ctx context.Context) ([]ScheduledJob, error)
	SetScheduledJob(ctx context.Context, name, timeOfDay string, ping int) error
	Healthy(ctx context.Context) bool
}

// Client talks to a CRCON server over HTTPS with bearer auth.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ API = (*Client)(nil)

// New creates a Client for the given base URL and bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// RecentBans returns the most recent temporary bans, newest first. An empty
// slice means there are no recent bans; that is not an error.
func (c *Client) RecentBans(ctx context.Context) ([]Ban, error) {
	var resp bansResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/get_bans", nil, nil, &resp); err != nil {
		return nil, err
	}

	// Only temp bans with a player id are actionable.
	var bans []Ban
	for _, b := range resp.Result {
		if b.Type != "temp" || b.PlayerID == "" {
			continue
		}
		bans = append(bans, Ban{PlayerID: b.PlayerID, Reason: b.Reason, BanTime: b.BanTime})
	}

	// The API reports oldest first.
	for i, j := 0, len(bans)-1; i < j; i, j = i+1, j-1 {
		bans[i], bans[j] = bans[j], bans[i]
	}
	if len(bans) > recentBanLimit {
		bans = bans[:recentBanLimit]
	}
	return bans, nil
}

// PlayerName resolves a player id to the name the server saw most recently.
func (c *Client) PlayerName(ctx context.Context, playerID string) (string, error) {
	q := url.Values{}
	q.Set("player_id", playerID)

	var resp playerProfileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/get_player_profile", q, nil, &resp); err != nil {
		return "", err
	}

	names := resp.Result.Names
	if len(names) == 0 {
		return "Unknown", nil
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i].LastSeen > names[j].LastSeen
	})
	if names[0].Name == "" {
		return "Unknown", nil
	}
	return names[0].Name, nil
}

// Unban lifts the temp ban for playerID. Returns ErrNotFound when the id
// has no matching ban.
func (c *Client) Unban(ctx context.Context, playerID string) error {
	bans, err := c.RecentBans(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, b := range bans {
		if b.PlayerID == playerID {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	var resp struct{ envelope }
	body := map[string]any{"player_id": playerID}
	return c.doJSON(ctx, http.MethodPost, "/api/unban", nil, body, &resp)
}

// MaxPing returns the current max ping autokick value in milliseconds.
func (c *Client) MaxPing(ctx context.Context) (int, error) {
	var resp serverSettingsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/get_server_settings", nil, nil, &resp); err != nil {
		return 0, err
	}
	if resp.Result.MaxPingAutokick == nil {
		return 0, &APIError{Status: http.StatusOK, Body: "response missing max_ping_autokick"}
	}
	return *resp.Result.MaxPingAutokick, nil
}

// SetMaxPing updates the max ping autokick value. Values outside 1..10000 ms
// are rejected locally without touching the network.
func (c *Client) SetMaxPing(ctx context.Context, ms int) error {
	if ms < minPing || ms > maxPing {
		return &InvalidArgumentError{Reason: fmt.Sprintf("ping must be between %d and %d ms", minPing, maxPing)}
	}

	var resp struct{ envelope }
	body := map[string]any{"max_ms": ms}
	return c.doJSON(ctx, http.MethodPost, "/api/set_max_ping_autokick", nil, body, &resp)
}

// ScheduledJobs returns the remote ping schedule.
func (c *Client) ScheduledJobs(ctx context.Context) ([]ScheduledJob, error) {
	var resp scheduleResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/get_ping_schedule", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// SetScheduledJob updates the time and ping of one named schedule entry.
// Time must be zero-padded 24h "HH:MM". Returns ErrNotFound when name is
// not among the remote schedule's job names.
func (c *Client) SetScheduledJob(ctx context.Context, name, timeOfDay string, ping int) error {
	if !timeOfDayRe.MatchString(timeOfDay) {
		return &InvalidArgumentError{Reason: "time must be HH:MM (24h, zero-padded)"}
	}
	if ping < minPing || ping > maxPing {
		return &InvalidArgumentError{Reason: fmt.Sprintf("ping must be between %d and %d ms", minPing, maxPing)}
	}

	jobs, err := c.ScheduledJobs(ctx)
	if err != nil {
		return err
	}
	known := false
	for _, j := range jobs {
		if j.Name == name {
			known = true
			break
		}
	}
	if !known {
		return ErrNotFound
	}

	var resp struct{ envelope }
	body := map[string]any{"name": name, "time": timeOfDay, "max_ms": ping}
	return c.doJSON(ctx, http.MethodPost, "/api/set_ping_schedule", nil, body, &resp)
}

// Healthy reports whether the API answers a lightweight status request
// within a bounded timeout. Unreachable or non-2xx is false, never an error.
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/get_status", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode >= 200 && res.StatusCode < 300
}

// doJSON performs one request with bearer auth and decodes the response.
// out must embed envelope (directly or via a response struct) so a
// failed payload can be detected.
func (c *Client) doJSON(ctx context.Context, method, path string, q url.Values, body any, out interface{ failure() (bool, string) }) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("crcon encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("crcon build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &APIError{Status: res.StatusCode, Body: "malformed response: " + err.Error()}
	}
	if failed, msg := out.failure(); failed {
		return &APIError{Status: res.StatusCode, Body: msg}
	}
	return nil
}

func (e envelope) failure() (bool, string) {
	return e.Failed, e.Error
}
