// Package http provides HTTP client construction shared by outbound callers.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client with explicit transport limits.
//
// Settings:
//   - Proxy: honours HTTP_PROXY and friends
//   - Dialer.Timeout: shorter than the default TCP connect timeout
//   - MaxIdleConns: 100 to avoid exhaustion under load
//   - Client.Timeout: whole-request timeout from the caller
//   - Jar: optional cookie jar, nil disables cookie handling
//
// Never use http.DefaultClient: it has no timeout.
func NewHTTPClient(timeout time.Duration, jar http.CookieJar) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t, Jar: jar}
}
