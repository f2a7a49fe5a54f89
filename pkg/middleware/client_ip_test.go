package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestProxyMatcher(t *testing.T) {
	m := NewProxyMatcher([]string{"10.0.0.0/8", " 192.0.2.7 ", "bogus", "300.0.0.0/8", ""}, nil)
	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"192.0.2.7", true},
		{"192.0.2.8", false},
		{"198.51.100.1", false},
	}
	for _, tt := range tests {
		if got := m.IsTrusted(net.ParseIP(tt.ip)); got != tt.want {
			t.Errorf("IsTrusted(%s) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if NewProxyMatcher([]string{"bogus"}, nil) != nil {
		t.Error("matcher with no valid entries should be nil")
	}
	var none *ProxyMatcher
	if none.IsTrusted(net.ParseIP("10.0.0.1")) {
		t.Error("nil matcher trusted an address")
	}
}

func TestClientIP(t *testing.T) {
	trusted := NewProxyMatcher([]string{"10.0.0.0/8"}, nil)
	tests := []struct {
		name      string
		peer      string
		forwarded string
		xff       string
		want      string
	}{
		{"untrusted peer ignores xff", "198.51.100.9:1", "", "203.0.113.5", "198.51.100.9"},
		{"untrusted peer ignores forwarded", "198.51.100.9:1", "for=203.0.113.5", "", "198.51.100.9"},
		{"trusted peer without headers", "10.0.0.2:1", "", "", "10.0.0.2"},
		{"trusted peer uses xff", "10.0.0.2:1", "", "203.0.113.5", "203.0.113.5"},
		{"rightmost untrusted hop wins", "10.0.0.2:1", "", "1.1.1.1, 203.0.113.5, 10.0.0.3", "203.0.113.5"},
		{"forwarded preferred over xff", "10.0.0.2:1", `for="[2001:db8::1]:443"`, "203.0.113.5", "2001:db8::1"},
		{"all hops trusted", "10.0.0.2:1", "", "10.0.0.9, 10.0.0.3", "10.0.0.9"},
		{"garbage header", "10.0.0.2:1", "", "unknown, nonsense", "10.0.0.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.peer
			if tt.forwarded != "" {
				r.Header.Set("Forwarded", tt.forwarded)
			}
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := ClientIP(r, trusted).String(); got != tt.want {
				t.Errorf("ClientIP() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClientKeyFunc(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.2:5000"
	r.Header.Set("X-Forwarded-For", "203.0.113.5")

	if got := ClientKeyFunc(nil)(r); got != "10.0.0.2" {
		t.Errorf("without proxies: key = %q, want peer address", got)
	}
	if got := ClientKeyFunc(NewProxyMatcher([]string{"10.0.0.2"}, nil))(r); got != "203.0.113.5" {
		t.Errorf("behind proxy: key = %q, want forwarded client", got)
	}
}

func TestRateLimiter_SpoofedForwardingIsLimited(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	h := rl.Handler(okHandler())

	for i, xff := range []string{"198.51.100.1", "198.51.100.2"} {
		r := requestFrom(http.MethodPost, "/contact", "192.0.2.1:4000")
		r.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		want := http.StatusOK
		if i > 0 {
			want = http.StatusTooManyRequests
		}
		if rec.Code != want {
			t.Errorf("request %d (xff %s): status = %d, want %d", i+1, xff, rec.Code, want)
		}
	}
}
