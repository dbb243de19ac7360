// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

// Package geoip provides IP-to-country lookup using MaxMind GeoLite2-Country
// database, used to tag public form submissions.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/oschwald/maxminddb-golang"
)

// privateCIDRs contains parsed CIDR blocks for private IP ranges.
var privateCIDRs []*net.IPNet

func init() {
	privateBlocks := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fc00::/7",  // IPv6 unique local
		"fe80::/10", // IPv6 link-local
	}

	for _, block := range privateBlocks {
		_, cidr, err := net.ParseCIDR(block)
		if err == nil {
			privateCIDRs = append(privateCIDRs, cidr)
		}
	}
}

// Lookup handles IP to country lookup using MaxMind GeoLite2-Country database.
type Lookup struct {
	db      *maxminddb.Reader
	enabled bool
	mu      sync.RWMutex
}

// geoRecord matches the GeoLite2-Country database structure.
type geoRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// NewLookup creates a new GeoIP lookup instance.
// If dbPath is empty, lookups are disabled and return "" (graceful
// degradation).
func NewLookup(dbPath string) (*Lookup, error) {
	g := &Lookup{}

	if dbPath == "" {
		return g, nil
	}

	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return g, fmt.Errorf("GeoIP database not found: %s", dbPath)
		}
		return g, fmt.Errorf("GeoIP database stat error: %w", err)
	}

	db, err := maxminddb.Open(dbPath)
	if err != nil {
		return g, fmt.Errorf("failed to open GeoIP database: %w", err)
	}

	g.db = db
	g.enabled = true
	return g, nil
}

// LookupCountry returns the 2-letter ISO country code for an IP address.
// Returns "LOCAL" for private/loopback IPs and "" when the lookup is
// disabled or the country cannot be determined.
func (g *Lookup) LookupCountry(ip string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return ""
	}

	if parsedIP.IsLoopback() || isPrivateIP(parsedIP) {
		return "LOCAL"
	}

	if !g.enabled || g.db == nil {
		return ""
	}

	var record geoRecord
	if err := g.db.Lookup(parsedIP, &record); err != nil {
		return ""
	}
	return record.Country.ISOCode
}

// Close releases the database reader.
func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.enabled = false
	if g.db != nil {
		err := g.db.Close()
		g.db = nil
		return err
	}
	return nil
}

func isPrivateIP(ip net.IP) bool {
	for _, block := range privateCIDRs {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}
