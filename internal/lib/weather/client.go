// Package weather provides the OpenWeatherMap client used to enrich zip
// codes with coordinates and a UTC offset.
//
// Only the "current weather by zip" endpoint is used; the weather payload
// itself is ignored.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/deppfellow/geouser/internal/config"
)

// currentWeatherPath is the OpenWeatherMap current weather endpoint.
const currentWeatherPath = "/data/2.5/weather"

// maxBodySize bounds how much of a provider response is read.
const maxBodySize = 1 << 20

// Location is what a zip code resolves to.
type Location struct {
	Latitude  float64
	Longitude float64

	// OffsetSeconds is the raw UTC shift reported by the provider.
	OffsetSeconds int

	// Timezone is OffsetSeconds formatted as "UTC-4" / "UTC+2".
	Timezone string
}

// Client calls the OpenWeatherMap API.
type Client struct {
	baseURL    string
	apiKey     string
	country    string
	httpClient *http.Client

	// limiter throttles outbound lookups; nil means unlimited.
	limiter *rate.Limiter

	logger *zerolog.Logger
}

// NewClient creates a Client from the weather config.
func NewClient(cfg config.WeatherConfig, logger *zerolog.Logger) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		country:    cfg.Country,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return c
}

// currentWeatherResponse is the subset of the provider payload we read.
type currentWeatherResponse struct {
	Cod     statusCode `json:"cod"`
	Message string     `json:"message"`
	Coord   *struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
	Timezone int `json:"timezone"`
}

// Enrich resolves zip to coordinates and a UTC offset.
//
// A provider level failure (cod != 200) is returned as *Error carrying the
// provider's code and message. Transport and decoding failures are returned
// wrapped. Nothing is returned alongside an error.
func (c *Client) Enrich(ctx context.Context, zip string) (*Location, error) {
	zip = strings.TrimSpace(zip)
	if zip == "" {
		return nil, &Error{Code: http.StatusBadRequest, Message: "zip code is required"}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("weather rate limit wait: %w", err)
		}
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.lookupURL(zip), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}

	var payload currentWeatherResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response (status=%d): %w", resp.StatusCode, err)
	}

	code := int(payload.Cod)
	if code == 0 {
		code = resp.StatusCode
	}

	if code != http.StatusOK {
		c.logger.Warn().
			Str("zip", zip).
			Int("code", code).
			Str("message", payload.Message).
			Dur("duration", time.Since(start)).
			Msg("weather lookup rejected")

		return nil, &Error{Code: code, Message: payload.Message}
	}

	if payload.Coord == nil {
		return nil, fmt.Errorf("weather response for zip %s has no coordinates", zip)
	}

	c.logger.Debug().
		Str("zip", zip).
		Int("timezone_offset", payload.Timezone).
		Dur("duration", time.Since(start)).
		Msg("weather lookup succeeded")

	return &Location{
		Latitude:      payload.Coord.Lat,
		Longitude:     payload.Coord.Lon,
		OffsetSeconds: payload.Timezone,
		Timezone:      FormatUTCOffset(payload.Timezone),
	}, nil
}

func (c *Client) lookupURL(zip string) string {
	q := url.Values{}
	q.Set("zip", zip+","+c.country)
	q.Set("appid", c.apiKey)

	return c.baseURL + currentWeatherPath + "?" + q.Encode()
}
