package server

import (
	"net/http"
	"net/url"
)

// SameOriginCheck accepts a websocket upgrade only when the Origin header
// is absent or names the requested host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == "" {
		return false
	}
	return u.Host == r.Host
}
