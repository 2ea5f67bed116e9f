package main

import (
	"context"
	"net/http"
	"strings"

	_ "net/http/pprof"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/Kriechi/uptimerobot-proxy/pkg/proxy"
	"github.com/Kriechi/uptimerobot-proxy/pkg/secret"
	"github.com/Kriechi/uptimerobot-proxy/pkg/transport"
)

func validListenAddr(addr string) bool {
	return len(addr) > 0 && len(strings.Split(addr, ":")) == 2
}

// newServer resolves the API secret and assembles the proxy handler, wrapped
// with Prometheus instrumentation when reg is not nil.
func newServer(ctx context.Context, opts proxy.Options, reg prometheus.Registerer) (*proxy.Handler, http.Handler, error) {
	apiSecret, err := secret.Resolve(ctx, secret.Source{
		Value:    opts.APISecret,
		SecretID: opts.APISecretID,
		Region:   opts.Region,
	}, nil)
	if err != nil {
		return nil, nil, err
	}
	opts.APISecret = apiSecret

	handler := proxy.NewUptimeRobotProxy(opts, transport.NewTripper(nil, reg))

	var wrappedHandler http.Handler = handler
	if reg != nil {
		wrappedHandler = wrapPrometheusMetrics(handler, reg)
	}
	return handler, wrappedHandler, nil
}

func main() {
	opts := proxy.NewOptions()

	var reg prometheus.Registerer
	if validListenAddr(opts.MetricsListenAddr) {
		reg = prometheus.DefaultRegisterer
	}

	handler, wrappedHandler, err := newServer(context.Background(), opts, reg)
	if err != nil {
		log.Fatal(err)
	}

	if validListenAddr(opts.PprofListenAddr) {
		// avoid leaking pprof to the main application http servers
		pprofMux := http.DefaultServeMux
		http.DefaultServeMux = http.NewServeMux()
		// https://golang.org/pkg/net/http/pprof/
		log.Infof("Listening for pprof connections on %s", opts.PprofListenAddr)
		go func() {
			log.Fatal(http.ListenAndServe(opts.PprofListenAddr, pprofMux))
		}()
	}

	if reg != nil {
		metricsHandler := http.NewServeMux()
		metricsHandler.Handle("/metrics", promhttp.Handler())

		log.Infof("Listening for Prometheus metrics on %s", opts.MetricsListenAddr)
		go func() {
			log.Fatal(http.ListenAndServe(opts.MetricsListenAddr, metricsHandler))
		}()
	}

	if validListenAddr(opts.HealthzListenAddr) {
		healthzHandler := http.NewServeMux()
		healthzHandler.Handle("/healthz", proxy.HealthHandler(handler))

		log.Infof("Listening for healthz on %s", opts.HealthzListenAddr)
		go func() {
			log.Fatal(http.ListenAndServe(opts.HealthzListenAddr, healthzHandler))
		}()
	}

	if len(opts.CertFile) > 0 || len(opts.KeyFile) > 0 {
		log.Infof("Reading HTTPS certificate from %v and %v.", opts.CertFile, opts.KeyFile)
		log.Infof("Listening for secure HTTPS connections on %s", opts.ListenAddr)
		log.Fatal(
			http.ListenAndServeTLS(opts.ListenAddr, opts.CertFile, opts.KeyFile, wrappedHandler),
		)
	} else {
		log.Infof("Listening for HTTP connections on %s", opts.ListenAddr)
		log.Fatal(
			http.ListenAndServe(opts.ListenAddr, wrappedHandler),
		)
	}
}
