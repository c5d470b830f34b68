// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/types"
)

func TestBearerStrategy(t *testing.T) {
	profileErr := &StatusError{StatusCode: http.StatusUnauthorized}

	profileFunc := func(_ context.Context, token string) (*types.Profile, error) {
		if token != "valid-token" {
			return nil, profileErr
		}
		return &types.Profile{ID: "42", Provider: CustomOAuth2Provider, Emails: []types.Email{{Value: "jane@example.com"}}}, nil
	}

	tests := []struct {
		name        string
		header      string
		setupMocks  func(*MockUserIdentityService)
		expectedErr error
	}{
		{
			name:   "valid token",
			header: "Bearer valid-token",
			setupMocks: func(users *MockUserIdentityService) {
				users.EXPECT().FindOrCreateUser(gomock.Any(), gomock.Any()).Return(&types.User{ID: "user-1"}, nil)
			},
		},
		{
			name:        "rejected token",
			header:      "Bearer expired-token",
			setupMocks:  func(*MockUserIdentityService) {},
			expectedErr: profileErr,
		},
		{
			name:        "missing header",
			setupMocks:  func(*MockUserIdentityService) {},
			expectedErr: ErrMissingToken,
		},
		{
			name:        "basic credentials",
			header:      "Basic dXNlcjpwYXNz",
			setupMocks:  func(*MockUserIdentityService) {},
			expectedErr: ErrMissingToken,
		},
		{
			name:        "empty bearer",
			header:      "Bearer   ",
			setupMocks:  func(*MockUserIdentityService) {},
			expectedErr: ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			users := NewMockUserIdentityService(ctrl)
			tt.setupMocks(users)

			s := NewBearerStrategy(profileFunc, NewVerifyFunc(users), tracing.NewNoopTracer(), logging.NewNoopLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/v0/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			result, err := s.Authenticate(httptest.NewRecorder(), req)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.User.ID != "user-1" {
				t.Errorf("expected user-1, got %+v", result.User)
			}
		})
	}
}

func TestBearerStrategy_WithoutSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := NewMockUserIdentityService(ctrl)
	users.EXPECT().FindOrCreateUser(gomock.Any(), gomock.Any()).Return(&types.User{ID: "user-1"}, nil)

	profileFunc := func(context.Context, string) (*types.Profile, error) {
		return &types.Profile{ID: "42", Provider: CustomOAuth2Provider}, nil
	}

	a := newTestAuthenticator(newTestSessions(), users)
	a.Use(NewBearerStrategy(profileFunc, NewVerifyFunc(users), tracing.NewNoopTracer(), logging.NewNoopLogger()))

	req := httptest.NewRequest(http.MethodGet, "/api/v0/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	rr := httptest.NewRecorder()
	chain(echoUser(), a.Initialize(), a.Authenticate(BearerStrategyName, AuthenticateOptions{NoSession: true})).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "user-1" {
		t.Fatalf("expected user-1, got %d %q", rr.Code, rr.Body.String())
	}

	if cookies := rr.Result().Cookies(); len(cookies) != 0 {
		t.Errorf("expected no session cookie, got %+v", cookies)
	}
}
