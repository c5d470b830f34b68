// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/canonical/oauth2-login/internal/kratos"
	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/monitoring"
	"github.com/canonical/oauth2-login/internal/storage"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/types"
)

var (
	ErrInvalidProfile = errors.New("profile has no provider id")
	ErrMissingEmail   = errors.New("profile has no email address")
)

type Service struct {
	storage StorageInterface
	kratos  IdentityProviderInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	kratos IdentityProviderInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		kratos:  kratos,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// FindOrCreateUser resolves the user linked to the provider profile. First
// logins are matched to an existing identity by email, or provision one.
func (s *Service) FindOrCreateUser(ctx context.Context, profile *types.Profile) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.FindOrCreateUser")
	defer span.End()

	if profile == nil || profile.ID == "" || profile.Provider == "" {
		return nil, ErrInvalidProfile
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	link, err := s.storage.GetIdentity(ctx, profile.Provider, profile.ID)
	if err == nil {
		return s.returningUser(ctx, link, raw)
	}

	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up linked identity: %w", err)
	}

	email := profile.Email()
	if email == "" {
		return nil, ErrMissingEmail
	}

	s.logger.Debugf("first login of %s user %s", profile.Provider, profile.ID)

	userID, err := s.kratos.GetIdentityIDByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up identity: %w", err)
	}

	if userID == "" {
		if userID, err = s.kratos.CreateIdentity(ctx, email, profile.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to create identity: %w", err)
		}
		s.logger.Security().UserCreated(userID, profile.Provider)
	}

	_, err = s.storage.CreateIdentity(ctx, &types.UserIdentity{
		UserID:     userID,
		Provider:   profile.Provider,
		ExternalID: profile.ID,
		Profile:    raw,
	})

	if errors.Is(err, storage.ErrDuplicateKey) {
		// a concurrent login linked the profile first
		link, err := s.storage.GetIdentity(ctx, profile.Provider, profile.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up linked identity: %w", err)
		}
		userID = link.UserID
	} else if err != nil {
		return nil, fmt.Errorf("failed to link identity: %w", err)
	}

	return s.FindUserByID(ctx, userID)
}

func (s *Service) returningUser(ctx context.Context, link *types.UserIdentity, raw []byte) (*types.User, error) {
	user, err := s.FindUserByID(ctx, link.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.storage.UpdateIdentityProfile(ctx, link.ID, raw); err != nil {
		s.logger.Warnf("failed to refresh profile of identity %s: %v", link.ID, err)
	}

	return user, nil
}

func (s *Service) FindUserByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.FindUserByID")
	defer span.End()

	user, err := s.kratos.GetUser(ctx, id)
	if errors.Is(err, kratos.ErrIdentityNotFound) {
		return nil, types.ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *Service) ListIdentities(ctx context.Context, userID string) ([]*types.UserIdentity, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.ListIdentities")
	defer span.End()

	identities, err := s.storage.ListIdentitiesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}

	return identities, nil
}
