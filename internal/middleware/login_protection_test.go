// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package middleware

import (
	"testing"
	"time"
)

func testLoginProtection() *LoginProtection {
	return NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       100, // irrelevant to lockout tests
		IPBurst:           100,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	})
}

func TestAccountLockoutAfterMaxFailures(t *testing.T) {
	lp := testLoginProtection()
	email := "admin@example.com"

	for i := 1; i < 5; i++ {
		locked, _ := lp.RecordFailedAttempt(email)
		if locked {
			t.Fatalf("locked after %d attempts, want lockout only at 5", i)
		}
	}

	locked, duration := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("expected lockout on 5th failed attempt")
	}
	if duration != 15*time.Minute {
		t.Errorf("expected base lockout of 15m, got %v", duration)
	}

	if locked, remaining := lp.IsAccountLocked(email); !locked || remaining <= 0 {
		t.Errorf("expected account locked with time remaining, got locked=%v remaining=%v", locked, remaining)
	}
}

func TestLockoutDurationDoubles(t *testing.T) {
	lp := testLoginProtection()
	email := "admin@example.com"

	var first, second time.Duration
	for i := 0; i < 5; i++ {
		_, first = lp.RecordFailedAttempt(email)
	}
	for i := 0; i < 5; i++ {
		_, second = lp.RecordFailedAttempt(email)
	}

	if second != 2*first {
		t.Errorf("expected second lockout %v to double first %v", second, first)
	}
}

func TestSuccessfulLoginClearsFailures(t *testing.T) {
	lp := testLoginProtection()
	email := "admin@example.com"

	for i := 0; i < 4; i++ {
		lp.RecordFailedAttempt(email)
	}
	lp.RecordSuccessfulLogin(email)

	// Counter restarts, so four more failures still do not lock.
	for i := 0; i < 4; i++ {
		if locked, _ := lp.RecordFailedAttempt(email); locked {
			t.Fatal("locked despite counter reset after successful login")
		}
	}
}

func TestAccountsTrackedIndependently(t *testing.T) {
	lp := testLoginProtection()

	for i := 0; i < 5; i++ {
		lp.RecordFailedAttempt("first@example.com")
	}

	if locked, _ := lp.IsAccountLocked("second@example.com"); locked {
		t.Error("unrelated account locked")
	}
	if locked, _ := lp.IsAccountLocked("first@example.com"); !locked {
		t.Error("attacked account not locked")
	}
}
