package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func wrapPrometheusMetrics(handler http.Handler, reg prometheus.Registerer) http.Handler {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "A counter for requests to the proxy handler.",
		},
		[]string{"code", "method"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "A histogram of latencies for proxied requests.",
			Buckets: []float64{.1, .25, .5, 0.75, 1, 2.5, 5, 10},
		},
		[]string{"handler", "method"},
	)
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "in_flight_requests",
		Help: "A gauge of requests currently being served by the proxy handler.",
	})
	responseSize := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "response_size_bytes",
			Help:    "A histogram of response sizes relayed from the UptimeRobot API.",
			Buckets: []float64{200, 500, 900, 1500, 4100, 8200, 16400, 32800, 65600},
		},
		[]string{},
	)

	reg.MustRegister(counter, duration, inFlight, responseSize)

	return promhttp.InstrumentHandlerCounter(counter,
		promhttp.InstrumentHandlerDuration(duration.MustCurryWith(prometheus.Labels{"handler": "status"}),
			promhttp.InstrumentHandlerInFlight(inFlight,
				promhttp.InstrumentHandlerResponseSize(responseSize, handler))))
}
