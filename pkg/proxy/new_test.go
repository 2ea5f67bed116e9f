package proxy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseOptions(t *testing.T) {
	h := newHandler(&Options{
		Debug:     true,
		APISecret: "u123-key",
	})
	assert.True(t, h.Debug)
	assert.Equal(t, "u123-key", h.Secret)
	assert.Equal(t, "https://api.uptimerobot.com/v3/getMonitors", h.UpstreamURL)
	assert.NotNil(t, h.Client)
}

func TestNewUptimeRobotProxyLogLevel(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	NewUptimeRobotProxy(Options{Debug: true}, nil)
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	NewUptimeRobotProxy(Options{}, nil)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestNewUptimeRobotProxyTransport(t *testing.T) {
	h := NewUptimeRobotProxy(Options{}, nil)
	assert.Nil(t, h.Client.Transport)

	rt := &http.Transport{}
	h = NewUptimeRobotProxy(Options{}, rt)
	assert.Same(t, rt, h.Client.Transport)
}

func TestHealthHandler(t *testing.T) {
	resp := httptest.NewRecorder()
	HealthHandler(newHandler(&Options{APISecret: "abc"})).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status": "OK", "secret_configured": true}`, resp.Body.String())
	assert.NotContains(t, resp.Body.String(), "abc")

	resp = httptest.NewRecorder()
	HealthHandler(newHandler(&Options{})).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.JSONEq(t, `{"status": "OK", "secret_configured": false}`, resp.Body.String())
}
