// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package util

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the originating client IP for a request.
// It prefers the leftmost X-Forwarded-For entry (set by the reverse proxy
// in front of the app), then X-Real-IP, then the connection's remote address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		return strings.TrimSpace(xr)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
