// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/oauth2-login/internal/db"
	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/monitoring"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

var identityColumns = []string{"id", "user_id", "provider", "external_id", "profile", "created_at", "updated_at"}

type rowScanner interface {
	Scan(...interface{}) error
}

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func scanIdentity(row rowScanner) (*types.UserIdentity, error) {
	var i types.UserIdentity
	if err := row.Scan(&i.ID, &i.UserID, &i.Provider, &i.ExternalID, &i.Profile, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *Storage) GetIdentity(ctx context.Context, provider, externalID string) (*types.UserIdentity, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetIdentity")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(identityColumns...).
		From("user_identities").
		Where(sq.Eq{"provider": provider, "external_id": externalID}).
		QueryRowContext(ctx)

	identity, err := scanIdentity(row)
	if err != nil {
		return nil, classify(err, "get user identity")
	}

	return identity, nil
}

func (s *Storage) CreateIdentity(ctx context.Context, identity *types.UserIdentity) (*types.UserIdentity, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateIdentity")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate identity ID: %w", err)
	}

	profile := identity.Profile
	if len(profile) == 0 {
		profile = []byte("{}")
	}

	row := s.db.Statement(ctx).
		Insert("user_identities").
		Columns("id", "user_id", "provider", "external_id", "profile").
		Values(id.String(), identity.UserID, identity.Provider, identity.ExternalID, profile).
		Suffix("RETURNING id, user_id, provider, external_id, profile, created_at, updated_at").
		QueryRowContext(ctx)

	created, err := scanIdentity(row)
	if err != nil {
		return nil, classify(err, "insert user identity")
	}

	return created, nil
}

// UpdateIdentityProfile stores the latest provider profile of a link,
// updated_at only moves when the profile changed
func (s *Storage) UpdateIdentityProfile(ctx context.Context, id string, profile []byte) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateIdentityProfile")
	defer span.End()

	return s.db.WithTx(ctx, func(ctx context.Context) error {
		var unchanged bool

		err := s.db.Statement(ctx).
			Select().
			Column(sq.Expr("profile = ?::jsonb", profile)).
			From("user_identities").
			Where(sq.Eq{"id": id}).
			Suffix("FOR UPDATE").
			QueryRowContext(ctx).
			Scan(&unchanged)
		if err != nil {
			return classify(err, "lock user identity")
		}

		if unchanged {
			return nil
		}

		_, err = s.db.Statement(ctx).
			Update("user_identities").
			Set("profile", profile).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Eq{"id": id}).
			ExecContext(ctx)
		if err != nil {
			return classify(err, "update user identity")
		}

		return nil
	})
}

func (s *Storage) ListIdentitiesByUserID(ctx context.Context, userID string) ([]*types.UserIdentity, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListIdentitiesByUserID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(identityColumns...).
		From("user_identities").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "list user identities")
	}
	defer rows.Close()

	var identities []*types.UserIdentity
	for rows.Next() {
		i, err := scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user identity: %w", err)
		}
		identities = append(identities, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return identities, nil
}
