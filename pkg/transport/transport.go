package transport

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Tripper logs every upstream call. It does not cache or retry.
type Tripper struct {
	transport http.RoundTripper
}

// NewTripper wraps base, or http.DefaultTransport when base is nil. When reg
// is not nil the returned RoundTripper is also instrumented with Prometheus
// metrics registered on reg.
func NewTripper(base http.RoundTripper, reg prometheus.Registerer) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	var rt http.RoundTripper = &Tripper{transport: base}
	if reg != nil {
		rt = instrument(rt, reg)
	}
	return rt
}

// Implement the RoundTripper interface
func (t *Tripper) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Context().Err() != nil {
		return nil, r.Context().Err()
	}

	start := time.Now()
	resp, err := t.transport.RoundTrip(r)
	fields := log.Fields{
		"url":      r.URL.String(),
		"method":   r.Method,
		"duration": time.Since(start),
	}
	if err != nil {
		log.WithFields(fields).WithError(err).Error("upstream request failed")
		return nil, err
	}

	log.WithFields(fields).Infof("upstream response: %s", resp.Status)
	return resp, nil
}

func instrument(rt http.RoundTripper, reg prometheus.Registerer) http.RoundTripper {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uptimerobot_upstream_requests_total",
			Help: "A counter for requests sent to the UptimeRobot API.",
		},
		[]string{"code", "method"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "uptimerobot_upstream_request_duration_seconds",
			Help:    "A histogram of UptimeRobot API latencies.",
			Buckets: []float64{.1, .25, .5, 0.75, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "uptimerobot_upstream_in_flight_requests",
		Help: "A gauge of requests currently waiting for the UptimeRobot API.",
	})

	reg.MustRegister(counter, duration, inFlight)

	return promhttp.InstrumentRoundTripperInFlight(inFlight,
		promhttp.InstrumentRoundTripperCounter(counter,
			promhttp.InstrumentRoundTripperDuration(duration, rt)))
}
