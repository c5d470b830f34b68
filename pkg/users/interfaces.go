// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"

	"github.com/canonical/oauth2-login/internal/types"
)

// StorageInterface is the subset of internal/storage the users service needs
type StorageInterface interface {
	GetIdentity(ctx context.Context, provider, externalID string) (*types.UserIdentity, error)
	CreateIdentity(ctx context.Context, identity *types.UserIdentity) (*types.UserIdentity, error)
	UpdateIdentityProfile(ctx context.Context, id string, profile []byte) error
	ListIdentitiesByUserID(ctx context.Context, userID string) ([]*types.UserIdentity, error)
}

// IdentityProviderInterface is the subset of the Kratos client the users service needs
type IdentityProviderInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentity(ctx context.Context, email, name string) (string, error)
	GetUser(ctx context.Context, id string) (*types.User, error)
}

type ServiceInterface interface {
	FindOrCreateUser(ctx context.Context, profile *types.Profile) (*types.User, error)
	FindUserByID(ctx context.Context, id string) (*types.User, error)
	ListIdentities(ctx context.Context, userID string) ([]*types.UserIdentity, error)
}
