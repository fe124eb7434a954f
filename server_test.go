package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, mutate func(*config)) *App {
	t.Helper()

	var cfg config
	cfg.InitConfig()
	cfg.Player.ScriptLocation = "https://cdn.example.com/player/"
	if mutate != nil {
		mutate(&cfg)
	}

	l, _ := test.NewNullLogger()
	return NewApp(cfg, l)
}

func doRequest(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestSetupEndpoint(t *testing.T) {
	r := newTestApp(t, nil).Router()

	rec := doRequest(t, r, "POST", "/api/setup", "application/json", `{"width":"100px","skin":"six.xml","file":"abc.mp4"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	out := decodeBody(t, rec)
	assert.Equal(t, "100", out["width"])
	assert.Equal(t, "six", out["skin"])
	assert.Equal(t, "https://cdn.example.com/player/", out["base"])
	assert.Equal(t, "abc.mp4", out["playlist"].([]interface{})[0].(map[string]interface{})["file"])
}

func TestSetupEndpointYAML(t *testing.T) {
	r := newTestApp(t, nil).Router()

	rec := doRequest(t, r, "POST", "/api/setup", "application/yaml", "width: 100%\naspectratio: \"4:3\"\n")
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeBody(t, rec)
	assert.Equal(t, "100%", out["width"])
	assert.Equal(t, "75%", out["aspectratio"])
}

func TestSetupEndpointInvalidOptions(t *testing.T) {
	r := newTestApp(t, nil).Router()
	want := decodeBody(t, doRequest(t, r, "GET", "/api/defaults", "", ""))

	for _, body := range []string{"", "true", "false", "null", "{not json", `"text"`, "[1,2]"} {
		rec := doRequest(t, r, "POST", "/api/setup", "application/json", body)
		require.Equal(t, http.StatusOK, rec.Code, "body=%q", body)
		assert.Equal(t, want, decodeBody(t, rec), "body=%q", body)
	}
}

func TestSetupEndpointPersisted(t *testing.T) {
	r := newTestApp(t, func(c *config) {
		c.Player.Defaults = map[string]interface{}{"volume": 40}
	}).Router()

	target := "/api/setup?persisted=" + url.QueryEscape(`{"mute":true,"volume":10}`)
	rec := doRequest(t, r, "POST", target, "application/json", `{"volume":80}`)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeBody(t, rec)
	assert.Equal(t, true, out["mute"])
	assert.Equal(t, 80.0, out["volume"])

	out = decodeBody(t, doRequest(t, r, "GET", "/api/defaults", "", ""))
	assert.Equal(t, 40.0, out["volume"])
}

func TestSetupEndpointCache(t *testing.T) {
	app := newTestApp(t, nil)
	r := app.Router()

	first := doRequest(t, r, "POST", "/api/setup", "application/json", `{"width":"50%"}`)
	second := doRequest(t, r, "POST", "/api/setup", "application/json", `{"width":"50%"}`)

	assert.Equal(t, first.Body.String(), second.Body.String())
	stats := app.Cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestSetupEndpointBodyTooLarge(t *testing.T) {
	r := newTestApp(t, nil).Router()

	body := `{"title":"` + strings.Repeat("a", 2<<20) + `"}`
	rec := doRequest(t, r, "POST", "/api/setup", "application/json", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRateLimitPerClient(t *testing.T) {
	r := newTestApp(t, func(c *config) {
		c.Server.RateLimit.PerClient = 2
	}).Router()

	for i := 0; i < 2; i++ {
		rec := doRequest(t, r, "GET", "/api/health", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := doRequest(t, r, "GET", "/api/health", "", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitPerClientIgnoresPort(t *testing.T) {
	r := newTestApp(t, func(c *config) {
		c.Server.RateLimit.PerClient = 2
	}).Router()

	codes := make([]int, 0, 5)
	for port := 40000; port < 40005; port++ {
		req := httptest.NewRequest("GET", "/api/health", nil)
		req.RemoteAddr = "203.0.113.7:" + strconv.Itoa(port)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429, 429, 429}, codes)

	req := httptest.NewRequest("GET", "/api/health", nil)
	req.RemoteAddr = "198.51.100.9:40000"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitGlobal(t *testing.T) {
	r := newTestApp(t, func(c *config) {
		c.Server.RateLimit.Global = 0.001
		c.Server.RateLimit.GlobalBurst = 1
	}).Router()

	assert.Equal(t, http.StatusOK, doRequest(t, r, "GET", "/api/health", "", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(t, r, "GET", "/api/health", "", "").Code)
}

func TestSetupEndpointUnusualDimensions(t *testing.T) {
	r := newTestApp(t, nil).Router()

	cases := []struct {
		body  string
		field string
		want  interface{}
	}{
		{"width: {1: a}\n", "width", map[string]interface{}{"1": "a"}},
		{"height: [1, {2: b}]\n", "height", []interface{}{1.0, map[string]interface{}{"2": "b"}}},
		{"width: .nan\n", "width", 640.0},
		{"height: .inf\n", "height", 360.0},
	}
	for _, c := range cases {
		rec := doRequest(t, r, "POST", "/api/setup", "application/yaml", c.body)
		require.Equal(t, http.StatusOK, rec.Code, c.body)
		assert.Equal(t, c.want, decodeBody(t, rec)[c.field], c.body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestApp(t, nil).Router()

	out := decodeBody(t, doRequest(t, r, "GET", "/api/health", "", ""))
	assert.Equal(t, "ok", out["status"])
	assert.Contains(t, out, "cache")
}

func TestMethodNotAllowed(t *testing.T) {
	r := newTestApp(t, nil).Router()

	rec := doRequest(t, r, "GET", "/api/setup", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestLogging(t *testing.T) {
	app := newTestApp(t, nil)
	l, hook := test.NewNullLogger()
	app.Logger = l
	r := app.Router()

	doRequest(t, r, "GET", "/api/health", "", "")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Request processed", entry.Message)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "/api/health", entry.Data["path"])
}
