package nba

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const (
	// BaseURL for the NBA stats API
	BaseURL = "https://stats.nba.com"

	// MinRequestInterval keeps us under the stats API rate limit
	MinRequestInterval = 600 * time.Millisecond

	// UserAgent for requests; stats.nba.com rejects non-browser clients
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	responseCacheTTL = 12 * time.Hour
)

// ResponseCache memoizes raw API payloads between runs. Implemented by
// cache.RedisCache; a nil cache disables memoization.
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Client fetches season stats and draft history from stats.nba.com.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	respCache   ResponseCache
	interval    time.Duration
	lastRequest time.Time
}

// NewClient creates a stats API client. respCache may be nil.
func NewClient(baseURL string, respCache ResponseCache) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		respCache:  respCache,
		interval:   MinRequestInterval,
	}
}

// FetchPlayerTotals returns season totals for every player in a season,
// merging the Base table (games, minutes, team) with the Advanced table
// (PIE). Players missing from the Advanced table are dropped.
func (c *Client) FetchPlayerTotals(ctx context.Context, season string) ([]PlayerSeasonTotals, error) {
	log.Printf("[nba-client] Fetching player stats for %s...", season)

	baseBody, err := c.fetch(ctx, c.leagueDashURL(season, "Base"))
	if err != nil {
		return nil, fmt.Errorf("fetching base stats for %s: %w", season, err)
	}

	advBody, err := c.fetch(ctx, c.leagueDashURL(season, "Advanced"))
	if err != nil {
		return nil, fmt.Errorf("fetching advanced stats for %s: %w", season, err)
	}

	totals, err := parsePlayerTotals(baseBody, advBody, season)
	if err != nil {
		return nil, fmt.Errorf("parsing stats for %s: %w", season, err)
	}

	log.Printf("[nba-client] ✓ %d players with stats for %s", len(totals), season)
	return totals, nil
}

// FetchDraftClass returns the draft board for a draft year, picks 1-60.
func (c *Client) FetchDraftClass(ctx context.Context, draftYear int) ([]DraftPick, error) {
	log.Printf("[nba-client] Fetching %d draft class...", draftYear)

	u := fmt.Sprintf("%s/stats/drafthistory?LeagueID=00&Season=%d", c.baseURL, draftYear)
	body, err := c.fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching draft history for %d: %w", draftYear, err)
	}

	picks, err := parseDraftHistory(body, draftYear)
	if err != nil {
		return nil, fmt.Errorf("parsing draft history for %d: %w", draftYear, err)
	}

	log.Printf("[nba-client] ✓ %d picks in the %d draft", len(picks), draftYear)
	return picks, nil
}

func (c *Client) leagueDashURL(season, measureType string) string {
	params := url.Values{
		"LeagueID":       {"00"},
		"Season":         {season},
		"SeasonType":     {"Regular Season"},
		"PerMode":        {"Totals"},
		"MeasureType":    {measureType},
		"PaceAdjust":     {"N"},
		"PlusMinus":      {"N"},
		"Rank":           {"N"},
		"LastNGames":     {"0"},
		"Month":          {"0"},
		"OpponentTeamID": {"0"},
		"Period":         {"0"},
		"TeamID":         {"0"},
	}
	return fmt.Sprintf("%s/stats/leaguedashplayerstats?%s", c.baseURL, params.Encode())
}

// fetch performs a GET with browser-style headers, consulting the response
// cache first. There is no retry: a single failure aborts the run.
func (c *Client) fetch(ctx context.Context, u string) ([]byte, error) {
	if c.respCache != nil {
		if cached, err := c.respCache.Get(ctx, u); err == nil && cached != "" {
			return []byte(cached), nil
		}
	}

	// Be polite to the stats API between uncached requests.
	if since := time.Since(c.lastRequest); since < c.interval {
		time.Sleep(c.interval - since)
	}
	c.lastRequest = time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://stats.nba.com/")
	req.Header.Set("Origin", "https://stats.nba.com")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stats API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats API returned status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	if c.respCache != nil {
		if err := c.respCache.Set(ctx, u, string(body), responseCacheTTL); err != nil {
			log.Printf("[nba-client] Warning: response cache write failed: %v", err)
		}
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
