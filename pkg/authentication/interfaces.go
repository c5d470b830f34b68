// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"

	"github.com/canonical/oauth2-login/internal/types"
)

type UserIdentityService interface {
	// FindOrCreateUser returns the local user linked to the provider profile,
	// provisioning one when the profile was never seen before
	FindOrCreateUser(ctx context.Context, profile *types.Profile) (*types.User, error)
	// FindUserByID returns types.ErrUserNotFound when the user is gone
	FindUserByID(ctx context.Context, id string) (*types.User, error)
}

type SessionManagerInterface interface {
	Login(w http.ResponseWriter, r *http.Request, userID string) error
	Logout(w http.ResponseWriter, r *http.Request) (string, error)
	UserID(r *http.Request) (string, bool)
	SetValue(w http.ResponseWriter, r *http.Request, key, value string) error
	PopValue(w http.ResponseWriter, r *http.Request, key string) (string, bool, error)
}

type StrategyInterface interface {
	Name() string
	// Authenticate either resolves a user, asks for a redirect or fails
	Authenticate(w http.ResponseWriter, r *http.Request) (*Result, error)
}

type HTTPClientInterface interface {
	Do(*http.Request) (*http.Response, error)
}
