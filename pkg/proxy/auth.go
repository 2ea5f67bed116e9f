package proxy

import (
	"encoding/base64"
	"net/http"
)

// BasicAuthorization returns the Authorization header value for an API key.
// The key is the username and the password is empty, so the trailing colon
// must be kept.
func BasicAuthorization(secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(secret+":"))
}

// redactedHeader returns a copy of h that is safe to log.
func redactedHeader(h http.Header) http.Header {
	c := h.Clone()
	if c.Get("Authorization") != "" {
		c.Set("Authorization", "Basic [REDACTED]")
	}
	return c
}
