package session

import (
	"net/http"
	"time"
)

// CookieName is the cookie carrying the visitor id.
const CookieName = "techcorp_sid"

// CookieOptions controls how the visitor cookie is written.
type CookieOptions struct {
	// Secure sets the Secure attribute. Enable it behind TLS.
	Secure bool

	// Domain scopes the cookie; empty means the request host.
	Domain string

	// MaxAge bounds the cookie lifetime. Zero writes a browser-session cookie.
	MaxAge time.Duration
}

// ReadCookie returns the visitor id from r, or "" if none was sent.
func ReadCookie(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// WriteCookie sets the visitor cookie on w.
func WriteCookie(w http.ResponseWriter, id string, opts CookieOptions) {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		Domain:   opts.Domain,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   opts.Secure,
	}
	if opts.MaxAge > 0 {
		c.MaxAge = int(opts.MaxAge / time.Second)
		c.Expires = time.Now().Add(opts.MaxAge)
	}
	http.SetCookie(w, c)
}

// ClearCookie expires the visitor cookie.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   opts.Domain,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   opts.Secure,
		MaxAge:   -1,
	})
}
