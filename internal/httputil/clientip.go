// Package httputil holds request helpers shared by the HTTP middleware.
package httputil

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIP returns the address the request came from. With trustProxy set,
// the leftmost X-Forwarded-For entry and then X-Real-IP are preferred over
// RemoteAddr. Header values that do not parse as an IP address are ignored,
// so a client cannot pick an arbitrary limiter key.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip, ok := firstForwarded(r.Header.Get("X-Forwarded-For")); ok {
			return ip
		}
		if ip, ok := parseIP(r.Header.Get("X-Real-IP")); ok {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func firstForwarded(xff string) (string, bool) {
	first, _, _ := strings.Cut(xff, ",")
	return parseIP(first)
}

func parseIP(s string) (string, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}
