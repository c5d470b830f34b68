// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// SecurityLogger follows the OWASP logging vocabulary, events are
// emitted at info level with a "security" type field
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) event(name, description string, fields ...zap.Field) {
	fields = append(
		fields,
		zap.String("type", "security"),
		zap.String("event", name),
	)
	s.l.Info(description, fields...)
}

func (s *SecurityLogger) SystemStartup() {
	s.event("sys_startup", "application started")
}

func (s *SecurityLogger) SystemShutdown() {
	s.event("sys_shutdown", "application shut down")
}

func (s *SecurityLogger) AuthnSuccess(userID, strategy string) {
	s.event(
		fmt.Sprintf("authn_login_success:%s", userID),
		fmt.Sprintf("user %s logged in with %s", userID, strategy),
		zap.String("strategy", strategy),
	)
}

func (s *SecurityLogger) AuthnFailure(strategy, reason string) {
	s.event(
		fmt.Sprintf("authn_login_fail:%s", strategy),
		fmt.Sprintf("login with %s failed", strategy),
		zap.String("strategy", strategy),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) AuthzFailure(userID, resource string) {
	s.event(
		fmt.Sprintf("authz_fail:%s,%s", userID, resource),
		fmt.Sprintf("user %s attempted to access %s without entitlement", userID, resource),
	)
}

func (s *SecurityLogger) SessionCreated(userID string) {
	s.event(
		fmt.Sprintf("session_created:%s", userID),
		fmt.Sprintf("session created for user %s", userID),
	)
}

func (s *SecurityLogger) SessionTerminated(userID string) {
	s.event(
		fmt.Sprintf("session_terminated:%s", userID),
		fmt.Sprintf("session terminated for user %s", userID),
	)
}

func (s *SecurityLogger) UserCreated(userID, provider string) {
	s.event(
		fmt.Sprintf("user_created:%s,%s", provider, userID),
		fmt.Sprintf("user %s created from %s profile", userID, provider),
	)
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l}
}
