// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package login

import (
	"context"
	"net/http"

	"github.com/canonical/oauth2-login/internal/types"
	"github.com/canonical/oauth2-login/pkg/authentication"
)

// AuthenticatorInterface is the subset of authentication.Authenticator the login routes need
type AuthenticatorInterface interface {
	Authenticate(name string, opts authentication.AuthenticateOptions) authentication.Interceptor
	RequireUser() authentication.Interceptor
	Logout(w http.ResponseWriter, r *http.Request) error
	Strategy(name string) (authentication.StrategyInterface, bool)
}

// StrategyMiddlewareInterface is a login flow mounted under /auth/thirdparty/<name>
type StrategyMiddlewareInterface interface {
	Name() string
	Value() authentication.Interceptor
}

// IdentityListerInterface is the subset of the users service the login routes need
type IdentityListerInterface interface {
	ListIdentities(ctx context.Context, userID string) ([]*types.UserIdentity, error)
}
