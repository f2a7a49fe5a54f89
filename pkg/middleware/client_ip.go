package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// ProxyMatcher reports whether a peer is a trusted reverse proxy whose
// forwarding headers may be believed.
type ProxyMatcher struct {
	ips  map[string]struct{}
	nets []*net.IPNet
}

// NewProxyMatcher parses entries as IPs or CIDRs. Invalid entries are
// logged and skipped. It returns nil when nothing valid remains, and a nil
// matcher trusts no one.
func NewProxyMatcher(entries []string, logger *slog.Logger) *ProxyMatcher {
	if len(entries) == 0 {
		return nil
	}

	ips := make(map[string]struct{})
	var nets []*net.IPNet
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			_, network, err := net.ParseCIDR(entry)
			if err != nil {
				if logger != nil {
					logger.Warn("invalid trusted proxy CIDR", "entry", entry, "error", err)
				}
				continue
			}
			nets = append(nets, network)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			if logger != nil {
				logger.Warn("invalid trusted proxy IP", "entry", entry)
			}
			continue
		}
		ips[ip.String()] = struct{}{}
	}

	if len(ips) == 0 && len(nets) == 0 {
		return nil
	}
	return &ProxyMatcher{ips: ips, nets: nets}
}

// IsTrusted reports whether ip is one of the trusted proxies.
func (m *ProxyMatcher) IsTrusted(ip net.IP) bool {
	if m == nil || ip == nil {
		return false
	}
	if _, ok := m.ips[ip.String()]; ok {
		return true
	}
	for _, network := range m.nets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientKey returns the peer IP of r without its port. Forwarding headers
// are ignored; use ClientKeyFunc behind a proxy.
func ClientKey(r *http.Request) string {
	if ip := remoteIP(r); ip != nil {
		return ip.String()
	}
	return r.RemoteAddr
}

// ClientKeyFunc returns a key function that reads Forwarded or
// X-Forwarded-For only when the peer is trusted. The rightmost untrusted
// hop is the client. A nil matcher yields ClientKey.
func ClientKeyFunc(trusted *ProxyMatcher) func(*http.Request) string {
	if trusted == nil {
		return ClientKey
	}
	return func(r *http.Request) string {
		if ip := ClientIP(r, trusted); ip != nil {
			return ip.String()
		}
		return r.RemoteAddr
	}
}

// ClientIP resolves the client address of r.
func ClientIP(r *http.Request, trusted *ProxyMatcher) net.IP {
	peer := remoteIP(r)
	if peer == nil {
		return nil
	}
	if !trusted.IsTrusted(peer) {
		return peer
	}

	forwarded := parseForwardedFor(r.Header.Get("Forwarded"))
	if len(forwarded) == 0 {
		forwarded = parseXForwardedFor(r.Header.Get("X-Forwarded-For"))
	}
	if len(forwarded) == 0 {
		return peer
	}
	for i := len(forwarded) - 1; i >= 0; i-- {
		if !trusted.IsTrusted(forwarded[i]) {
			return forwarded[i]
		}
	}
	return forwarded[0]
}

func remoteIP(r *http.Request) net.IP {
	host := strings.TrimSpace(r.RemoteAddr)
	if host == "" {
		return nil
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if zone := strings.Index(host, "%"); zone != -1 {
		host = host[:zone]
	}
	return net.ParseIP(host)
}

// parseForwardedFor extracts the for= addresses of an RFC 7239 header.
func parseForwardedFor(header string) []net.IP {
	if header == "" {
		return nil
	}
	var out []net.IP
	for _, element := range strings.Split(header, ",") {
		for _, param := range strings.Split(element, ";") {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(key), "for") {
				continue
			}
			if ip := parseForwardedIP(value); ip != nil {
				out = append(out, ip)
			}
		}
	}
	return out
}

func parseXForwardedFor(header string) []net.IP {
	if header == "" {
		return nil
	}
	var out []net.IP
	for _, part := range strings.Split(header, ",") {
		if ip := parseForwardedIP(part); ip != nil {
			out = append(out, ip)
		}
	}
	return out
}

func parseForwardedIP(value string) net.IP {
	value = strings.Trim(strings.TrimSpace(value), "\"")
	if value == "" || strings.EqualFold(value, "unknown") {
		return nil
	}

	host := value
	if strings.HasPrefix(host, "[") {
		if end := strings.Index(host, "]"); end != -1 {
			host = host[1:end]
		}
	} else if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if zone := strings.Index(host, "%"); zone != -1 {
		host = host[:zone]
	}
	return net.ParseIP(host)
}
