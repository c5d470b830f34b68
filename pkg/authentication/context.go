// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/canonical/oauth2-login/internal/types"
)

type userContextKey struct{}

type sessionsContextKey struct{}

// WithUser returns a new context carrying the authenticated user
func WithUser(ctx context.Context, user *types.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the authenticated user from the context.
func UserFromContext(ctx context.Context) (*types.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*types.User)
	return user, ok && user != nil
}

// GetUserID retrieves the authenticated user ID from the context.
// Returns an empty string and false if no user is present.
func GetUserID(ctx context.Context) (string, bool) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return "", false
	}
	return user.ID, true
}

func withSessions(ctx context.Context, sessions SessionManagerInterface) context.Context {
	return context.WithValue(ctx, sessionsContextKey{}, sessions)
}

// SessionsFromContext returns the session manager attached by Initialize
func SessionsFromContext(ctx context.Context) (SessionManagerInterface, bool) {
	s, ok := ctx.Value(sessionsContextKey{}).(SessionManagerInterface)
	return s, ok
}
