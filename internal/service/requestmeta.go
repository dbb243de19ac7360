// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"net/http"

	"github.com/mileusna/useragent"

	"github.com/northboundstudio/brandsite/internal/geoip"
	"github.com/northboundstudio/brandsite/internal/util"
)

// RequestMeta captures client details recorded alongside public form
// submissions for moderation.
type RequestMeta struct {
	IPAddress string
	UserAgent string
	Browser   string
	Country   string
}

// CollectRequestMeta extracts client metadata from an incoming request.
// geo may be nil, in which case Country stays empty.
func CollectRequestMeta(r *http.Request, geo *geoip.Lookup) RequestMeta {
	meta := RequestMeta{
		IPAddress: util.ClientIP(r),
		UserAgent: r.UserAgent(),
	}

	if meta.UserAgent != "" {
		ua := useragent.Parse(meta.UserAgent)
		if ua.Name != "" {
			meta.Browser = ua.Name
			if ua.Version != "" {
				meta.Browser = fmt.Sprintf("%s %s", ua.Name, ua.Version)
			}
		}
	}

	if geo != nil && meta.IPAddress != "" {
		meta.Country = geo.LookupCountry(meta.IPAddress)
	}

	return meta
}
