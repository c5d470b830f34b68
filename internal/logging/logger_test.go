// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDebugLogger(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("DEBUG")
	}()
}

func TestInvalidLevel(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("invalid")
	}()
}

func TestSecurityLoggerEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := newSecurityLogger(zap.New(core))

	s.AuthnSuccess("user-1", "facebook")
	s.AuthnFailure("oauth2", "invalid state")
	s.SessionTerminated("user-1")

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	expected := []string{
		"authn_login_success:user-1",
		"authn_login_fail:oauth2",
		"session_terminated:user-1",
	}

	for i, e := range entries {
		fields := e.ContextMap()
		if fields["type"] != "security" {
			t.Errorf("expected security type, got %v", fields["type"])
		}
		if fields["event"] != expected[i] {
			t.Errorf("expected event %q, got %v", expected[i], fields["event"])
		}
	}
}
