// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/oauth2-login/internal/types"
)

type StorageInterface interface {
	GetIdentity(ctx context.Context, provider, externalID string) (*types.UserIdentity, error)
	CreateIdentity(ctx context.Context, identity *types.UserIdentity) (*types.UserIdentity, error)
	UpdateIdentityProfile(ctx context.Context, id string, profile []byte) error
	ListIdentitiesByUserID(ctx context.Context, userID string) ([]*types.UserIdentity, error)
}
