// Package api implements the HTTP client for the nickel collector backend.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
	interfaces "github.com/banjiubanjiu/Nickle-System/internal/domain/interfaces"
)

const (
	defaultBaseURL = "http://127.0.0.1:8000"
	defaultTimeout = 10 * time.Second

	defaultIntradayLimit = 30
)

var (
	ErrEmptyExchange = errors.New("exchange is required")
	ErrInvalidSlide  = errors.New("slide number must be positive")
)

// Options configures a Client. Zero fields fall back to the collector's
// local defaults.
type Options struct {
	BaseURL        string
	Timeout        time.Duration
	YearlyBasePath string
}

// Client is a typed HTTP client for the collector's dashboard API and the
// static yearly chart payloads.
type Client struct {
	baseURL    string
	yearlyBase string
	httpClient *http.Client
}

var _ interfaces.SnapshotSource = (*Client)(nil)
var _ interfaces.YearlySource = (*Client)(nil)

// NewClient builds a Client with a fixed request timeout.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	yearlyBase := opts.YearlyBasePath
	if yearlyBase == "" {
		yearlyBase = "/yearly"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		yearlyBase: yearlyBase,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// envelope is the backend's standard response wrapper.
type envelope[T any] struct {
	Data  T              `json:"data"`
	Meta  map[string]any `json:"meta"`
	Error *string        `json:"error"`
}

// Health fetches the readiness probe carrying the suggested poll interval.
func (c *Client) Health(ctx context.Context) (*market.Health, error) {
	var health market.Health
	if err := c.getJSON(ctx, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Latest fetches the most recent snapshot for an exchange.
func (c *Client) Latest(ctx context.Context, exchange string) (*market.Snapshot, error) {
	if exchange == "" {
		return nil, ErrEmptyExchange
	}
	params := url.Values{"exchange": {exchange}}
	var env envelope[market.Snapshot]
	if err := c.getJSON(ctx, "/api/v1/dashboard/latest", params, &env); err != nil {
		return nil, err
	}
	if env.Error != nil {
		return nil, fmt.Errorf("fetch latest snapshot: %s", *env.Error)
	}
	return &env.Data, nil
}

// Intraday fetches the most recent limit snapshots for an exchange, newest
// last. Non-positive limits use the collector's default of 30.
func (c *Client) Intraday(ctx context.Context, exchange string, limit int) ([]market.Snapshot, error) {
	if exchange == "" {
		return nil, ErrEmptyExchange
	}
	if limit <= 0 {
		limit = defaultIntradayLimit
	}
	params := url.Values{
		"exchange": {exchange},
		"limit":    {strconv.Itoa(limit)},
	}
	var env envelope[[]market.Snapshot]
	if err := c.getJSON(ctx, "/api/v1/dashboard/intraday", params, &env); err != nil {
		return nil, err
	}
	if env.Error != nil {
		return nil, fmt.Errorf("fetch intraday snapshots: %s", *env.Error)
	}
	return env.Data, nil
}

// Daily fetches settled daily records, optionally bounded by an inclusive
// date range.
func (c *Client) Daily(ctx context.Context, query interfaces.DailyQuery) ([]market.DailyRecord, error) {
	if query.Exchange == "" {
		return nil, ErrEmptyExchange
	}
	params := url.Values{"exchange": {query.Exchange}}
	if query.StartDate != "" {
		params.Set("start_date", query.StartDate)
	}
	if query.EndDate != "" {
		params.Set("end_date", query.EndDate)
	}
	var env envelope[[]market.DailyRecord]
	if err := c.getJSON(ctx, "/api/v1/dashboard/daily", params, &env); err != nil {
		return nil, err
	}
	if env.Error != nil {
		return nil, fmt.Errorf("fetch daily records: %s", *env.Error)
	}
	return env.Data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
