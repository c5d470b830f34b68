// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Errorf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
	Fatalf(string, ...interface{})
	Error(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Debug(...interface{})
	Fatal(...interface{})
	Sync() error
	Security() SecurityLoggerInterface
}

// SecurityLoggerInterface emits audit events with a stable, machine parsable shape
type SecurityLoggerInterface interface {
	SystemStartup()
	SystemShutdown()
	AuthnSuccess(userID, strategy string)
	AuthnFailure(strategy, reason string)
	AuthzFailure(userID, resource string)
	SessionCreated(userID string)
	SessionTerminated(userID string)
	UserCreated(userID, provider string)
}
