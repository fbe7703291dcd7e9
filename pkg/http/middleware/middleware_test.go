package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	applogger "MarketMCP/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(echo.HeaderXRequestID))
	assert.Len(t, seen, 36)
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestRecover_ReturnsInternalError(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(Recover(applogger.NewWithWriter(&buf, zerolog.DebugLevel)))
	e.GET("/boom", func(c echo.Context) error { panic("kaboom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
	assert.Contains(t, buf.String(), "kaboom")
}

func TestRequestLogging_LevelsByStatus(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestID(), RequestLogging(applogger.NewWithWriter(&buf, zerolog.DebugLevel)))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/fail", func(c echo.Context) error { return errors.New("broken") })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"info"`)
	assert.Contains(t, lines[0], `"status":200`)
	assert.Contains(t, lines[1], `"level":"error"`)
	assert.Contains(t, lines[1], `"status":500`)
	assert.Contains(t, lines[1], "broken")
}

func TestCORS_Preflight(t *testing.T) {
	e := echo.New()
	e.Use(CORS(CORSConfig{
		AllowOrigins: []string{"https://app.example"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		MaxAge:       600,
	}))
	e.POST("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	e := echo.New()
	e.Use(CORS(CORSConfig{AllowOrigins: []string{"https://app.example"}}))
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Branches(t *testing.T) {
	testCases := []struct {
		name       string
		origins    []string
		maxAge     int
		method     string
		origin     string
		wantOrigin string
		wantMaxAge string
		wantVary   bool
	}{
		{name: "wildcard without origin header", origins: []string{"*"}, method: http.MethodGet, wantOrigin: "*", wantVary: true},
		{name: "wildcard echoes origin", origins: []string{"*"}, method: http.MethodGet, origin: "https://b.example", wantOrigin: "https://b.example", wantVary: true},
		{name: "preflight without max age", origins: []string{"*"}, method: http.MethodOptions, origin: "https://b.example", wantOrigin: "https://b.example", wantVary: true},
		{name: "preflight with max age", origins: []string{"https://a.example"}, maxAge: 120, method: http.MethodOptions, origin: "https://a.example", wantOrigin: "https://a.example", wantMaxAge: "120", wantVary: true},
		{name: "disallowed preflight", origins: []string{"https://a.example"}, maxAge: 120, method: http.MethodOptions, origin: "https://evil.example"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			e.Use(CORS(CORSConfig{AllowOrigins: tc.origins, AllowMethods: []string{http.MethodGet}, MaxAge: tc.maxAge}))
			e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

			req := httptest.NewRequest(tc.method, "/x", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tc.wantMaxAge, rec.Header().Get("Access-Control-Max-Age"))
			assert.Equal(t, tc.wantVary, rec.Header().Get(echo.HeaderVary) == echo.HeaderOrigin)
			if tc.wantOrigin != "" && tc.method == http.MethodOptions {
				assert.Equal(t, http.StatusNoContent, rec.Code)
			}
		})
	}
}

func TestMetrics_LabelsByRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := echo.New()
	e.Use(Metrics(reg, applogger.Nop(), 0))
	e.GET("/items/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, id := range []string{"1", "2", "3"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	}

	hc, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, hc)

	count, err := testutil.GatherAndCount(reg, "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
