// Package nominatim provides forward and reverse geocoding against a
// Nominatim-compatible service (https://nominatim.org).
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/NERVsystems/geokit/pkg/cache"
	"github.com/NERVsystems/geokit/pkg/geo"
	"github.com/NERVsystems/geokit/pkg/metrics"
)

const (
	// DefaultBaseURL is the public OpenStreetMap Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// DefaultUserAgent identifies geokit, as required by the Nominatim usage policy.
	DefaultUserAgent = "geokit/0.1.0"

	serviceName = "Nominatim"

	opSearch  = "search"
	opReverse = "reverse"
)

// Options configures a Client. Zero values select the defaults.
type Options struct {
	BaseURL    string
	UserAgent  string
	Language   string        // Accept-Language for returned names
	Timeout    time.Duration // Per-request timeout, including rate limit wait
	RPS        float64       // Requests per second
	Burst      int
	Cache      cache.Store
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client is a rate-limited, caching Nominatim client. It is safe for
// concurrent use; all callers share one limiter.
type Client struct {
	baseURL    string
	userAgent  string
	language   string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      cache.Store
	logger     *slog.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	// Nominatim: 1 request per second
	// https://operations.osmfoundation.org/policies/nominatim/
	if opts.RPS <= 0 {
		opts.RPS = 1
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}
	if opts.Cache == nil {
		opts.Cache = cache.Nop{}
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		userAgent:  opts.UserAgent,
		language:   opts.Language,
		timeout:    opts.Timeout,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst),
		cache:      opts.Cache,
		logger:     opts.Logger.With("service", serviceName),
	}
}

// cachedResult is the cache representation of a lookup, including misses.
type cachedResult struct {
	Found       bool    `json:"found"`
	Lat         float64 `json:"lat,omitempty"`
	Lon         float64 `json:"lon,omitempty"`
	DisplayName string  `json:"display_name,omitempty"`
}

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Geocode resolves a free-form place name to coordinates. found is false
// when the service has no match.
func (c *Client) Geocode(ctx context.Context, query string) (geo.Point, bool, error) {
	query = strings.TrimSpace(query)
	key := "search:" + strings.ToLower(query)

	if r, ok := c.cached(ctx, opSearch, key); ok {
		return geo.Point{Lat: r.Lat, Lon: r.Lon}, r.Found, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	var results []searchResult
	if err := c.get(ctx, opSearch, "/search", params, &results); err != nil {
		return geo.Point{}, false, err
	}

	if len(results) == 0 {
		c.record(opSearch, "not_found")
		c.store(ctx, key, cachedResult{})
		return geo.Point{}, false, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		c.record(opSearch, "error")
		return geo.Point{}, false, &APIError{
			Service:  serviceName,
			Message:  fmt.Sprintf("invalid coordinates in response: %q, %q", results[0].Lat, results[0].Lon),
			Guidance: GuidanceDataError,
		}
	}

	c.record(opSearch, "found")
	c.store(ctx, key, cachedResult{Found: true, Lat: lat, Lon: lon, DisplayName: results[0].DisplayName})
	return geo.Point{Lat: lat, Lon: lon}, true, nil
}

// Reverse returns the display name of the place at p. found is false when
// the service reports that nothing is there, e.g. open ocean.
func (c *Client) Reverse(ctx context.Context, p geo.Point) (string, bool, error) {
	key := fmt.Sprintf("reverse:%.4f,%.4f", p.Lat, p.Lon)

	if r, ok := c.cached(ctx, opReverse, key); ok {
		return r.DisplayName, r.Found, nil
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(p.Lon, 'f', -1, 64))
	params.Set("format", "json")

	var result reverseResult
	if err := c.get(ctx, opReverse, "/reverse", params, &result); err != nil {
		return "", false, err
	}

	// Nominatim answers 200 {"error":"Unable to geocode"} for empty areas.
	if result.Error != "" || result.DisplayName == "" {
		c.record(opReverse, "not_found")
		c.store(ctx, key, cachedResult{})
		return "", false, nil
	}

	c.record(opReverse, "found")
	c.store(ctx, key, cachedResult{Found: true, Lat: p.Lat, Lon: p.Lon, DisplayName: result.DisplayName})
	return result.DisplayName, true, nil
}

// get performs one rate-limited GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.GeocoderDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.Debug("rate limiter wait error", "operation", op, "error", err)
		c.record(op, "error")
		return newTransportError(err)
	}

	if c.language != "" {
		params.Set("accept-language", c.language)
	}
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.record(op, "error")
		return newTransportError(err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to execute request", "operation", op, "error", err)
		c.record(op, "error")
		return newTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		c.logger.Error("geocoding service returned error", "operation", op, "status", resp.StatusCode)
		c.record(op, "error")
		return newStatusError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("failed to decode response", "operation", op, "error", err)
		c.record(op, "error")
		return &APIError{
			Service:     serviceName,
			StatusCode:  resp.StatusCode,
			Message:     "failed to parse response: " + err.Error(),
			Recoverable: false,
			Guidance:    GuidanceDataError,
			Err:         err,
		}
	}
	return nil
}

func (c *Client) cached(ctx context.Context, op, key string) (cachedResult, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return cachedResult{}, false
	}
	if !ok {
		metrics.CacheMisses.WithLabelValues(op).Inc()
		return cachedResult{}, false
	}

	var r cachedResult
	if err := json.Unmarshal(data, &r); err != nil {
		c.logger.Warn("discarding malformed cache entry", "key", key, "error", err)
		return cachedResult{}, false
	}
	metrics.CacheHits.WithLabelValues(op).Inc()
	c.record(op, "cached")
	return r, true
}

func (c *Client) store(ctx context.Context, key string, r cachedResult) {
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (c *Client) record(op, outcome string) {
	metrics.GeocoderRequests.WithLabelValues(op, outcome).Inc()
}
