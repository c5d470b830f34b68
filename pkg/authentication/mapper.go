// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"github.com/canonical/oauth2-login/internal/types"
)

// UserProfile pairs the security identifier with the user it identifies
type UserProfile struct {
	SecurityID string     `json:"securityId"`
	Profile    types.User `json:"profile"`
}

// MapProfile is pure: the user is copied, never referenced
func MapProfile(user *types.User) *UserProfile {
	if user == nil {
		return &UserProfile{}
	}

	return &UserProfile{
		SecurityID: user.ID,
		Profile:    *user,
	}
}
