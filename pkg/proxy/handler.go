package proxy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"

	log "github.com/sirupsen/logrus"
	"k8s.io/utils/strings/slices"
)

// UpstreamURL is the UptimeRobot v3 endpoint every request is forwarded to.
const UpstreamURL = "https://api.uptimerobot.com/v3/getMonitors"

const genericFailureMessage = "request failed"

// Hop-by-hop headers, these are removed when relaying the upstream response.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// Handler forwards JSON requests to the UptimeRobot API with Basic
// authentication derived from an API key and relays the answer back.
type Handler struct {
	// Print debug information
	Debug bool

	// UptimeRobot API key, never logged
	Secret string

	// Upstream monitors endpoint
	UpstreamURL string

	// Client used for upstream calls
	Client *http.Client
}

// NewUptimeRobotProxy parses all options and creates a new HTTP Handler.
// A nil transport uses http.DefaultTransport.
func NewUptimeRobotProxy(opts Options, transport http.RoundTripper) *Handler {
	log.SetLevel(log.InfoLevel)
	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	h := newHandler(&opts)
	if transport != nil {
		h.Client.Transport = transport
	}
	return h
}

func newHandler(opts *Options) *Handler {
	h := &Handler{
		Debug:       opts.Debug,
		Secret:      opts.APISecret,
		UpstreamURL: UpstreamURL,
		Client:      &http.Client{},
	}

	log.Infof("Sending requests to upstream UptimeRobot API at %s.", h.UpstreamURL)
	if h.Secret == "" {
		log.Warn("No UptimeRobot API secret configured, requests will fail until UPTIMEROBOT_API_KEY is set.")
	}

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writePreflight(w)
		return
	}

	resp, err := h.forward(r)
	if err != nil {
		log.WithError(err).WithField("kind", errorKind(err)).Error("unable to proxy request")
		if errors.Is(err, ErrConfigMissing) {
			writePlainError(w, ErrConfigMissing.Error())
		} else {
			writePlainError(w, genericFailureMessage)
		}
		return
	}
	defer resp.Body.Close()

	h.relay(w, resp)
}

func (h *Handler) forward(r *http.Request) (*http.Response, error) {
	proxyReq, err := h.buildUpstreamRequest(r)
	if err != nil {
		return nil, err
	}

	resp, err := h.Client.Do(proxyReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamCallFailed, err)
	}
	return resp, nil
}

// buildUpstreamRequest checks the configuration and creates the authenticated
// POST for the upstream server
func (h *Handler) buildUpstreamRequest(r *http.Request) (*http.Request, error) {
	if h.Secret == "" {
		return nil, ErrConfigMissing
	}

	if log.GetLevel() == log.DebugLevel {
		initialReqDump, _ := httputil.DumpRequest(r, false)
		log.Debugf("Initial request dump: %v", string(initialReqDump))
	}

	payload, err := reencodeJSON(r.Body)
	if err != nil {
		return nil, err
	}

	proxyReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.UpstreamURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamCallFailed, err)
	}
	proxyReq.Header.Set("Content-Type", "application/json")
	proxyReq.Header.Set("Authorization", BasicAuthorization(h.Secret))

	if log.GetLevel() == log.DebugLevel {
		dumpReq := proxyReq.Clone(proxyReq.Context())
		dumpReq.Header = redactedHeader(proxyReq.Header)
		proxyReqDump, _ := httputil.DumpRequest(dumpReq, false)
		log.Debugf("Proxying request: %v", string(proxyReqDump))
	}

	return proxyReq, nil
}

// reencodeJSON reads exactly one JSON value from body and serializes it
// again. Key order and whitespace of the original are not preserved, numbers
// are.
func reencodeJSON(body io.Reader) ([]byte, error) {
	if body == nil {
		return nil, fmt.Errorf("%w: empty body", ErrBodyParseFailed)
	}

	dec := json.NewDecoder(body)
	dec.UseNumber()

	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBodyParseFailed, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after JSON value", ErrBodyParseFailed)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBodyParseFailed, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// relay copies the upstream status, headers and body to w. The status is
// already written when the body copy fails, so that error is only logged.
func (h *Handler) relay(w http.ResponseWriter, resp *http.Response) {
	for k, vv := range resp.Header {
		if slices.Contains(hopHeaders, k) {
			continue
		}
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.WithError(err).Error("relaying upstream response")
	}
}

func writePlainError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(msg))
}
