package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/geouser/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := zerolog.Nop()
	return NewClient(config.WeatherConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Country: "us",
		Timeout: 2 * time.Second,
	}, &logger)
}

func TestEnrich_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "10001,us", r.URL.Query().Get("zip"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cod":200,"coord":{"lon":-73.9,"lat":40.7},"timezone":-14400,"name":"New York"}`))
	})

	loc, err := client.Enrich(context.Background(), "10001")
	require.NoError(t, err)
	assert.Equal(t, 40.7, loc.Latitude)
	assert.Equal(t, -73.9, loc.Longitude)
	assert.Equal(t, -14400, loc.OffsetSeconds)
	assert.Equal(t, "UTC-4", loc.Timezone)
}

func TestEnrich_ProviderNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"zip not found"}`))
	})

	loc, err := client.Enrich(context.Background(), "00000")
	require.Error(t, err)
	assert.Nil(t, loc)

	var werr *Error
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, 404, werr.Code)
	assert.Equal(t, "zip not found", werr.Message)
}

func TestEnrich_NumericErrorCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key."}`))
	})

	_, err := client.Enrich(context.Background(), "10001")

	var werr *Error
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, 401, werr.Code)
	assert.Equal(t, "Invalid API key.", werr.Message)
}

func TestEnrich_MissingCodUsesHTTPStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"slow down"}`))
	})

	_, err := client.Enrich(context.Background(), "10001")

	var werr *Error
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, http.StatusTooManyRequests, werr.Code)
}

func TestEnrich_NonJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := client.Enrich(context.Background(), "10001")
	require.Error(t, err)

	var werr *Error
	assert.False(t, errors.As(err, &werr), "decode failures are not provider errors")
	assert.Contains(t, err.Error(), "status=502")
}

func TestEnrich_MissingCoordinates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cod":200,"timezone":0}`))
	})

	_, err := client.Enrich(context.Background(), "10001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no coordinates")
}

func TestEnrich_EmptyZip(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.Enrich(context.Background(), "  ")

	var werr *Error
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, http.StatusBadRequest, werr.Code)
	assert.False(t, called)
}

func TestEnrich_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Enrich(ctx, "10001")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClient_RateLimit(t *testing.T) {
	logger := zerolog.Nop()

	unlimited := NewClient(config.WeatherConfig{BaseURL: "http://x/", Timeout: time.Second}, &logger)
	assert.Nil(t, unlimited.limiter)
	assert.Equal(t, "http://x", unlimited.baseURL)

	limited := NewClient(config.WeatherConfig{BaseURL: "http://x", Timeout: time.Second, RateLimit: 2}, &logger)
	require.NotNil(t, limited.limiter)
	assert.Equal(t, time.Second, limited.httpClient.Timeout)
}

func TestFormatUTCOffset(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{-14400, "UTC-4"},
		{-18000, "UTC-5"},
		{0, "UTC+0"},
		{3600, "UTC+1"},
		{36000, "UTC+10"},
		{19800, "UTC+5"},
		{-12600, "UTC-4"},
		{-1800, "UTC-1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUTCOffset(tt.seconds), "offset %d", tt.seconds)
	}
}

func TestStatusCode_UnmarshalJSON(t *testing.T) {
	var s statusCode

	require.NoError(t, s.UnmarshalJSON([]byte(`200`)))
	assert.Equal(t, statusCode(200), s)

	require.NoError(t, s.UnmarshalJSON([]byte(`"404"`)))
	assert.Equal(t, statusCode(404), s)

	require.NoError(t, s.UnmarshalJSON([]byte(`null`)))
	assert.Equal(t, statusCode(0), s)

	assert.Error(t, s.UnmarshalJSON([]byte(`"abc"`)))
}
