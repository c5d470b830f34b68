// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/oauth2-login/internal/kratos"
	"github.com/canonical/oauth2-login/internal/storage"
	"github.com/canonical/oauth2-login/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_users.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type serviceMocks struct {
	storage  *MockStorageInterface
	kratos   *MockIdentityProviderInterface
	logger   *MockLoggerInterface
	security *MockSecurityLoggerInterface
}

func newTestService(ctrl *gomock.Controller) (*Service, serviceMocks) {
	m := serviceMocks{
		storage:  NewMockStorageInterface(ctrl),
		kratos:   NewMockIdentityProviderInterface(ctrl),
		logger:   NewMockLoggerInterface(ctrl),
		security: NewMockSecurityLoggerInterface(ctrl),
	}

	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		}).AnyTimes()

	m.logger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	m.logger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.logger.EXPECT().Security().Return(m.security).AnyTimes()

	return NewService(m.storage, m.kratos, mockTracer, NewMockMonitorInterface(ctrl), m.logger), m
}

func TestService_FindOrCreateUser(t *testing.T) {
	profile := &types.Profile{
		ID:          "42",
		Provider:    "custom-oauth2",
		DisplayName: "Jane Doe",
		Emails:      []types.Email{{Value: "jane@example.com"}},
	}
	user := &types.User{ID: "identity-1", Email: "jane@example.com", Name: "Jane Doe"}
	link := &types.UserIdentity{ID: "link-1", UserID: "identity-1", Provider: "custom-oauth2", ExternalID: "42"}

	testCases := []struct {
		name        string
		profile     *types.Profile
		setupMocks  func(serviceMocks)
		expected    *types.User
		expectedErr error
	}{
		{
			name:    "returning user",
			profile: profile,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetIdentity(gomock.Any(), "custom-oauth2", "42").Return(link, nil)
				m.kratos.EXPECT().GetUser(gomock.Any(), "identity-1").Return(user, nil)
				m.storage.EXPECT().UpdateIdentityProfile(gomock.Any(), "link-1", gomock.Any()).Return(nil)
			},
			expected: user,
		},
		{
			name:    "returning user, profile refresh failure is tolerated",
			profile: profile,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetIdentity(gomock.Any(), "custom-oauth2", "42").Return(link, nil)
				m.kratos.EXPECT().GetUser(gomock.Any(), "identity-1").Return(user, nil)
				m.storage.EXPECT().UpdateIdentityProfile(gomock.Any(), "link-1", gomock.Any()).Return(errors.New("db down"))
				m.logger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expected: user,
		},
		{
			name:    "returning user removed from kratos",
			profile: profile,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetIdentity(gomock.Any(), "custom-oauth2", "42").Return(link, nil)
				m.kratos.EXPECT().GetUser(gomock.Any(), "identity-1").Return(nil, kratos.ErrIdentityNotFound)
			},
			expectedErr: types.ErrUserNotFound,
		},
		{
			name:    "first login links existing identity",
			profile: profile,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetIdentity(gomock.Any(), "custom-oauth2", "42").Return(nil, storage.ErrNotFound)
				m.kratos.EXPECT().GetIdentityIDByEmail(gomock.Any(), "jane@example.com").Return("identity-1", nil)
				m.storage.EXPECT().CreateIdentity(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, i *types.UserIdentity) (*types.UserIdentity, error) {
						if i.UserID != "identity-1" || i.Provider != "custom-oauth2" || i.ExternalID != "42" {
							return nil, errors.New("unexpected link")
						}

						var stored types.Profile
						if err := json.Unmarshal(i.Profile, &stored); err != nil || stored.ID != "42" {
							return nil, errors.New("unexpected stored profile")
						}

						return i, nil
					})
				m.kratos.EXPECT().GetUser(gomock.Any(), "identity-1").Return(user, nil)
			},
			expected: user,
		},
		{
			name:    "first login provisions identity",
			profile: profile,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetIdentity(gomock.Any(), "custom-oauth2", "42").Return(nil, storage.ErrNotFound)
				m.kratos.EXPECT().GetIdentityIDByEmail(gomock.Any(), "jane@example.com").Return("", nil)
				m.kratos.EXPECT().CreateIdentity(gomock.Any(), "jane@example.com", "Jane Doe").Return("identity-1", nil)
				m.security.EXPECT().UserCreated("identity-1", "custom-oauth2")
				m.storage.EXPECT().CreateIdentity(gomock.Any(), gomock.Any()).Return(link, nil)
				m.kratos.EXPECT().GetUser(gomock.Any(), "identity-1").Return(user, nil)
			},
			expected: user,
		},
		{
			name:    "concurrent first login",
			profile: profile,
			setupMocks: func(m serviceMocks) {
				gomock.InOrder(
					m.storage.EXPECT().GetIdentity(gomock.Any(), "custom-oauth2", "42").Return(nil, storage.ErrNotFound),
					m.kratos.EXPECT().GetIdentityIDByEmail(gomock.Any(), "jane@example.com").Return("identity-2", nil),
					m.storage.EXPECT().CreateIdentity(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey),
					m.storage.EXPECT().GetIdentity(gomock.Any(), "custom-oauth2", "42").Return(link, nil),
					m.kratos.EXPECT().GetUser(gomock.Any(), "identity-1").Return(user, nil),
				)
			},
			expected: user,
		},
		{
			name:        "missing email",
			profile:     &types.Profile{ID: "42", Provider: "custom-oauth2"},
			expectedErr: ErrMissingEmail,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetIdentity(gomock.Any(), "custom-oauth2", "42").Return(nil, storage.ErrNotFound)
			},
		},
		{
			name:        "missing id",
			profile:     &types.Profile{Provider: "custom-oauth2"},
			expectedErr: ErrInvalidProfile,
			setupMocks:  func(serviceMocks) {},
		},
		{
			name:        "nil profile",
			expectedErr: ErrInvalidProfile,
			setupMocks:  func(serviceMocks) {},
		},
		{
			name:        "storage failure",
			profile:     profile,
			expectedErr: errors.ErrUnsupported,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetIdentity(gomock.Any(), "custom-oauth2", "42").Return(nil, errors.ErrUnsupported)
			},
		},
		{
			name:        "kratos failure on create",
			profile:     profile,
			expectedErr: errors.ErrUnsupported,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetIdentity(gomock.Any(), "custom-oauth2", "42").Return(nil, storage.ErrNotFound)
				m.kratos.EXPECT().GetIdentityIDByEmail(gomock.Any(), "jane@example.com").Return("", nil)
				m.kratos.EXPECT().CreateIdentity(gomock.Any(), "jane@example.com", "Jane Doe").Return("", errors.ErrUnsupported)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			tc.setupMocks(m)

			got, err := s.FindOrCreateUser(context.Background(), tc.profile)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if *got != *tc.expected {
				t.Errorf("expected user %+v, got %+v", tc.expected, got)
			}
		})
	}
}

func TestService_FindUserByID(t *testing.T) {
	testCases := []struct {
		name        string
		kratosErr   error
		expectedErr error
	}{
		{name: "found"},
		{name: "not found", kratosErr: kratos.ErrIdentityNotFound, expectedErr: types.ErrUserNotFound},
		{name: "kratos down", kratosErr: errors.ErrUnsupported, expectedErr: errors.ErrUnsupported},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)

			var user *types.User
			if tc.kratosErr == nil {
				user = &types.User{ID: "identity-1"}
			}
			m.kratos.EXPECT().GetUser(gomock.Any(), "identity-1").Return(user, tc.kratosErr)

			got, err := s.FindUserByID(context.Background(), "identity-1")

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}

			if err != nil || got.ID != "identity-1" {
				t.Fatalf("expected identity-1, got %+v, %v", got, err)
			}
		})
	}
}

func TestService_ListIdentities(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl)

	identities := []*types.UserIdentity{{ID: "link-1"}, {ID: "link-2"}}
	m.storage.EXPECT().ListIdentitiesByUserID(gomock.Any(), "identity-1").Return(identities, nil)

	got, err := s.ListIdentities(context.Background(), "identity-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Errorf("expected 2 identities, got %d", len(got))
	}
}
