package proxy

import (
	"errors"
)

var (
	ErrConfigMissing      = errors.New("API secret is not configured")
	ErrBodyParseFailed    = errors.New("unable to parse request body as JSON")
	ErrUpstreamCallFailed = errors.New("upstream call failed")
)

// errorKind returns a short label for logging and metrics. Errors that don't
// wrap one of the sentinels above are reported as "internal".
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrConfigMissing):
		return "config_missing"
	case errors.Is(err, ErrBodyParseFailed):
		return "body_parse_failed"
	case errors.Is(err, ErrUpstreamCallFailed):
		return "upstream_call_failed"
	default:
		return "internal"
	}
}
