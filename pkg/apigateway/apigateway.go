// Package apigateway runs an http.Handler behind AWS API Gateway proxy
// integrations on Lambda.
package apigateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	log "github.com/sirupsen/logrus"
)

// LambdaHandler is the function signature expected by lambda.Start.
type LambdaHandler func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Wrap converts API Gateway events into requests for h and records the
// response. Events that can't be turned into a request get a plain 500.
func Wrap(h http.Handler) LambdaHandler {
	return func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := newRequest(ctx, ev)
		if err != nil {
			log.WithError(err).Error("unable to convert API Gateway event")
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusInternalServerError,
				Headers:    map[string]string{"Content-Type": "text/plain; charset=utf-8"},
				Body:       "request failed",
			}, nil
		}

		w := newResponseWriter()
		h.ServeHTTP(w, req)
		return w.response(), nil
	}
}

func newRequest(ctx context.Context, ev events.APIGatewayProxyRequest) (*http.Request, error) {
	body := []byte(ev.Body)
	if ev.IsBase64Encoded {
		var err error
		if body, err = base64.StdEncoding.DecodeString(ev.Body); err != nil {
			return nil, err
		}
	}

	u := url.URL{Path: ev.Path}
	if u.Path == "" {
		u.Path = "/"
	}
	query := url.Values{}
	if len(ev.MultiValueQueryStringParameters) > 0 {
		for k, vv := range ev.MultiValueQueryStringParameters {
			for _, v := range vv {
				query.Add(k, v)
			}
		}
	} else {
		for k, v := range ev.QueryStringParameters {
			query.Set(k, v)
		}
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, ev.HTTPMethod, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if len(ev.MultiValueHeaders) > 0 {
		for k, vv := range ev.MultiValueHeaders {
			for _, v := range vv {
				req.Header.Add(k, v)
			}
		}
	} else {
		for k, v := range ev.Headers {
			req.Header.Set(k, v)
		}
	}
	req.Host = req.Header.Get("Host")
	req.RemoteAddr = ev.RequestContext.Identity.SourceIP

	return req, nil
}

type responseWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: make(http.Header)}
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	return w.body.Write(b)
}

func (w *responseWriter) WriteHeader(code int) {
	if w.status != 0 {
		return
	}
	w.status = code
}

func (w *responseWriter) response() events.APIGatewayProxyResponse {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}

	resp := events.APIGatewayProxyResponse{
		StatusCode:        status,
		Headers:           make(map[string]string, len(w.header)),
		MultiValueHeaders: make(map[string][]string, len(w.header)),
	}
	for k, vv := range w.header {
		if len(vv) == 0 {
			continue
		}
		resp.Headers[k] = vv[0]
		resp.MultiValueHeaders[k] = append([]string(nil), vv...)
	}

	if utf8.Valid(w.body.Bytes()) {
		resp.Body = w.body.String()
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(w.body.Bytes())
		resp.IsBase64Encoded = true
	}
	return resp
}
