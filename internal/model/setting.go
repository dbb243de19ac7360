// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package model

import "time"

// Well-known setting keys.
const (
	SettingSiteName         = "site_name"
	SettingTagline          = "tagline"
	SettingContactRecipient = "contact_recipient"
	SettingSocialInstagram  = "social_instagram"
	SettingSocialLinkedIn   = "social_linkedin"
	SettingSocialX          = "social_x"
)

// PublicSettingKeys lists the settings exposed on the public endpoint.
// Everything else (notification recipients in particular) stays admin-only.
func PublicSettingKeys() []string {
	return []string{
		SettingSiteName,
		SettingTagline,
		SettingSocialInstagram,
		SettingSocialLinkedIn,
		SettingSocialX,
	}
}

// Setting represents a single key/value site setting.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
