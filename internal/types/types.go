// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Email is a single address as reported by an identity provider
type Email struct {
	Value string `json:"value"`
}

// Profile is the identity payload returned by an external identity provider
type Profile struct {
	ID          string                 `json:"id"`
	Provider    string                 `json:"provider"`
	DisplayName string                 `json:"displayName,omitempty"`
	Emails      []Email                `json:"emails,omitempty"`
	Raw         map[string]interface{} `json:"_raw,omitempty"`
}

// Email returns the first address of the profile, if any
func (p *Profile) Email() string {
	if p == nil || len(p.Emails) == 0 {
		return ""
	}

	return p.Emails[0].Value
}

// User is the local user record, backed by an identity in Kratos
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
}

// UserIdentity links a provider profile to a local user
type UserIdentity struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Provider   string    `db:"provider"`
	ExternalID string    `db:"external_id"`
	Profile    []byte    `db:"profile"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
