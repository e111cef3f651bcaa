// Package network resolves request peers behind reverse proxies.
package network

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the address of the client that made r.
//
// The left-most parseable X-Forwarded-For entry wins, then X-Real-IP, then
// the host part of RemoteAddr. Header entries that are not IP addresses are
// skipped.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(strings.Trim(s, "[]"))
	if ip == nil {
		return ""
	}
	return ip.String()
}
