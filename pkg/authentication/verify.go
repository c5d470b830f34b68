// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/canonical/oauth2-login/internal/types"
)

// VerifyFunc turns a provider profile into a local user
type VerifyFunc func(ctx context.Context, accessToken, refreshToken string, profile *types.Profile) (*types.User, error)

// NewVerifyFunc looks up, or creates, the user linked to the profile.
// The lookup result is returned untouched.
func NewVerifyFunc(users UserIdentityService) VerifyFunc {
	return func(ctx context.Context, accessToken, refreshToken string, profile *types.Profile) (*types.User, error) {
		return users.FindOrCreateUser(ctx, profile)
	}
}
