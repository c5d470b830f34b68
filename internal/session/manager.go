// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/tracing"
)

const (
	DefaultName = "oauth2_login_session"

	userIDKey = "user_id"
)

// Manager stores the authenticated user and short lived flow state in a
// gorilla session
type Manager struct {
	store sessions.Store
	name  string

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

// session never returns nil, undecodable cookies start a fresh session
func (m *Manager) session(r *http.Request) *sessions.Session {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		m.logger.Debugf("discarding invalid session: %v", err)
	}

	if s == nil {
		s = sessions.NewSession(m.store, m.name)
		s.Options = &sessions.Options{Path: "/", MaxAge: 86400 * 30}
		s.IsNew = true
	}

	return s
}

// Login binds userID to the session, a fresh session ID is issued
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID string) error {
	_, span := m.tracer.Start(r.Context(), "session.Manager.Login")
	defer span.End()

	s := m.session(r)
	s.ID = ""
	s.Values[userIDKey] = userID

	return s.Save(r, w)
}

// Logout expires the session and returns the user ID it carried
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) (string, error) {
	_, span := m.tracer.Start(r.Context(), "session.Manager.Logout")
	defer span.End()

	s := m.session(r)
	userID, _ := s.Values[userIDKey].(string)

	s.Values = make(map[interface{}]interface{})
	s.Options.MaxAge = -1

	return userID, s.Save(r, w)
}

func (m *Manager) UserID(r *http.Request) (string, bool) {
	s := m.session(r)
	userID, ok := s.Values[userIDKey].(string)

	return userID, ok && userID != ""
}

func (m *Manager) SetValue(w http.ResponseWriter, r *http.Request, key, value string) error {
	s := m.session(r)
	s.Values[key] = value

	return s.Save(r, w)
}

// PopValue reads and removes key, so a value can only be consumed once
func (m *Manager) PopValue(w http.ResponseWriter, r *http.Request, key string) (string, bool, error) {
	s := m.session(r)

	value, ok := s.Values[key].(string)
	if !ok {
		return "", false, nil
	}

	delete(s.Values, key)

	return value, true, s.Save(r, w)
}

func NewManager(store sessions.Store, tracer tracing.TracingInterface, logger logging.LoggerInterface) *Manager {
	return &Manager{
		store:  store,
		name:   DefaultName,
		tracer: tracer,
		logger: logger,
	}
}
