package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/geouser/internal/config"
	"github.com/deppfellow/geouser/internal/errs"
	"github.com/deppfellow/geouser/internal/lib/weather"
	"github.com/deppfellow/geouser/internal/repository"
	"github.com/deppfellow/geouser/internal/server"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{Config: config.DefaultConfig(), Logger: &logger}
}

func handleError(t *testing.T, err error) (int, errs.HTTPError) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler(err, c)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestGlobalErrorHandler_WeatherError(t *testing.T) {
	err := fmt.Errorf("failed to enrich zip 00000: %w", &weather.Error{Code: 404, Message: "zip not found"})

	status, body := handleError(t, err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, errs.CodeEnrichmentFailed, body.Code)
	assert.Equal(t, "zip not found", body.Message)
	assert.True(t, body.Override)
}

func TestGlobalErrorHandler_WeatherErrorOutOfRange(t *testing.T) {
	status, body := handleError(t, &weather.Error{Code: 700, Message: "weird"})
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "weird", body.Message)
}

func TestGlobalErrorHandler_NotFound(t *testing.T) {
	status, body := handleError(t, fmt.Errorf("get: %w", repository.ErrUserNotFound))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestGlobalErrorHandler_EchoErrors(t *testing.T) {
	status, body := handleError(t, echo.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Route not found", body.Message)

	status, body = handleError(t, echo.ErrMethodNotAllowed)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.Equal(t, "METHOD_NOT_ALLOWED", body.Code)
}

func TestGlobalErrorHandler_Unknown(t *testing.T) {
	status, body := handleError(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.False(t, body.Override)
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFromError(&weather.Error{Code: 404}))
	assert.Equal(t, http.StatusBadRequest, statusFromError(errs.NewBadRequestError("x", false, nil, nil, nil)))
	assert.Equal(t, http.StatusMethodNotAllowed, statusFromError(echo.ErrMethodNotAllowed))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(errors.New("boom")))
}

func TestRequestID(t *testing.T) {
	e := echo.New()

	var seen string
	h := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Len(t, seen, 36)
}

func TestEnhanceContext(t *testing.T) {
	e := echo.New()
	ce := NewContextEnhancer(newTestServer())

	h := ce.EnhanceContext()(func(c echo.Context) error {
		assert.NotNil(t, GetLogger(c))
		assert.Same(t, GetLogger(c), LoggerFromContext(c.Request().Context()))
		return nil
	})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NoError(t, h(c))
}
