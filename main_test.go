package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kriechi/uptimerobot-proxy/pkg/proxy"
)

func TestValidListenAddr(t *testing.T) {
	assert.True(t, validListenAddr(":9090"))
	assert.True(t, validListenAddr("127.0.0.1:9090"))
	assert.False(t, validListenAddr(""))
	assert.False(t, validListenAddr("localhost"))
}

func TestNewServerWithMetrics(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"stat":"ok"}`)
	}))
	defer ts.Close()

	reg := prometheus.NewRegistry()
	handler, wrapped, err := newServer(context.Background(), proxy.Options{APISecret: "abc"}, reg)
	require.NoError(t, err)
	assert.Equal(t, "abc", handler.Secret)
	handler.UpstreamURL = ts.URL

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		wrapped.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "http://proxy.example.com/", strings.NewReader("{}")))
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, `{"stat":"ok"}`, resp.Body.String())
	}

	expected := `
# HELP api_requests_total A counter for requests to the proxy handler.
# TYPE api_requests_total counter
api_requests_total{code="200",method="post"} 2
# HELP uptimerobot_upstream_requests_total A counter for requests sent to the UptimeRobot API.
# TYPE uptimerobot_upstream_requests_total counter
uptimerobot_upstream_requests_total{code="200",method="post"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "api_requests_total", "uptimerobot_upstream_requests_total"))
}

func TestNewServerWithoutMetrics(t *testing.T) {
	handler, wrapped, err := newServer(context.Background(), proxy.Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", handler.Secret)
	assert.Same(t, handler, wrapped)
}
