// Package util holds small helpers shared by the collector
package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds a proxy selector for the collector's HTTP transport.
// Explicitly configured proxies win over the HTTP_PROXY/HTTPS_PROXY
// environment; a proxy that fails to parse is treated as unset.
func NewProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	plain := parseProxy(httpProxy)
	secure := parseProxy(httpsProxy)
	if plain == nil && secure == nil {
		return http.ProxyFromEnvironment
	}
	return func(req *http.Request) (*url.URL, error) {
		switch {
		case req.URL.Scheme == "https" && secure != nil:
			return secure, nil
		case plain != nil:
			return plain, nil
		default:
			return http.ProxyFromEnvironment(req)
		}
	}
}

func parseProxy(raw string) *url.URL {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return u
}
