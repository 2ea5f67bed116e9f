package proxy

import (
	"github.com/alecthomas/kingpin/v2"
)

// Options for uptimerobot-proxy command line arguments
type Options struct {
	Debug             bool
	ListenAddr        string
	MetricsListenAddr string
	HealthzListenAddr string
	PprofListenAddr   string
	APISecret         string
	APISecretID       string
	Region            string
	CertFile          string
	KeyFile           string
}

// NewOptions defines and parses the raw command line arguments
func NewOptions() Options {
	var opts Options
	kingpin.Flag("verbose", "enable additional logging (env - VERBOSE)").Envar("VERBOSE").Short('v').BoolVar(&opts.Debug)
	kingpin.Flag("listen-addr", "address:port to listen for requests on (env - LISTEN_ADDR)").Default(":8099").Envar("LISTEN_ADDR").StringVar(&opts.ListenAddr)
	kingpin.Flag("metrics-listen-addr", "address:port to listen for Prometheus metrics on, empty to disable (env - METRICS_LISTEN_ADDR)").Default("").Envar("METRICS_LISTEN_ADDR").StringVar(&opts.MetricsListenAddr)
	kingpin.Flag("healthz-listen-addr", "address:port to listen for healthz on, empty to disable (env - HEALTHZ_LISTEN_ADDR)").Default("").Envar("HEALTHZ_LISTEN_ADDR").StringVar(&opts.HealthzListenAddr)
	kingpin.Flag("pprof-listen-addr", "address:port to listen for pprof on, empty to disable (env - PPROF_LISTEN_ADDR)").Default("").Envar("PPROF_LISTEN_ADDR").StringVar(&opts.PprofListenAddr)
	kingpin.Flag("api-secret", "UptimeRobot API key used for Basic authentication upstream (env - UPTIMEROBOT_API_KEY)").Envar("UPTIMEROBOT_API_KEY").PlaceHolder("API_KEY").StringVar(&opts.APISecret)
	kingpin.Flag("api-secret-id", "AWS Secrets Manager secret holding the UptimeRobot API key, used when --api-secret is empty (env - UPTIMEROBOT_API_KEY_SECRET_ID)").Envar("UPTIMEROBOT_API_KEY_SECRET_ID").StringVar(&opts.APISecretID)
	kingpin.Flag("aws-region", "AWS region for Secrets Manager lookups (env - AWS_REGION)").Envar("AWS_REGION").Default("eu-central-1").StringVar(&opts.Region)
	kingpin.Flag("cert-file", "path to the certificate file (env - CERT_FILE)").Envar("CERT_FILE").Default("").StringVar(&opts.CertFile)
	kingpin.Flag("key-file", "path to the private key file (env - KEY_FILE)").Envar("KEY_FILE").Default("").StringVar(&opts.KeyFile)
	kingpin.Parse()
	return opts
}
