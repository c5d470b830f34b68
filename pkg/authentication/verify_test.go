// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/oauth2-login/internal/types"
)

func TestNewVerifyFunc(t *testing.T) {
	profile := &types.Profile{ID: "42", Provider: CustomOAuth2Provider, Emails: []types.Email{{Value: "jane@example.com"}}}
	user := &types.User{ID: "user-1"}
	lookupErr := errors.New("db down")

	tests := []struct {
		name         string
		user         *types.User
		err          error
		expectedUser *types.User
		expectedErr  error
	}{
		{name: "user found", user: user, expectedUser: user},
		{name: "lookup failed", err: lookupErr, expectedErr: lookupErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			users := NewMockUserIdentityService(ctrl)
			users.EXPECT().FindOrCreateUser(gomock.Any(), profile).Return(tt.user, tt.err).Times(1)

			got, err := NewVerifyFunc(users)(context.Background(), "access", "refresh", profile)

			if err != tt.expectedErr {
				t.Errorf("expected error %v, got %v", tt.expectedErr, err)
			}

			if got != tt.expectedUser {
				t.Errorf("expected user %v, got %v", tt.expectedUser, got)
			}
		})
	}
}
