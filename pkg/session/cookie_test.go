package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWriteAndReadCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteCookie(rec, "abc-123", CookieOptions{Secure: true, MaxAge: time.Hour})

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || c.Value != "abc-123" {
		t.Errorf("cookie = %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode {
		t.Errorf("unexpected attributes: HttpOnly=%v Secure=%v SameSite=%v", c.HttpOnly, c.Secure, c.SameSite)
	}
	if c.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want 3600", c.MaxAge)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	if got := ReadCookie(req); got != "abc-123" {
		t.Errorf("ReadCookie() = %q", got)
	}
}

func TestReadCookieMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := ReadCookie(req); got != "" {
		t.Errorf("ReadCookie() = %q, want empty", got)
	}
}

func TestClearCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearCookie(rec, CookieOptions{})
	c := rec.Result().Cookies()[0]
	if c.MaxAge >= 0 {
		t.Errorf("MaxAge = %d, want negative", c.MaxAge)
	}
}
