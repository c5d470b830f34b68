// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package login

import (
	"time"
)

type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

type Strategy struct {
	Name     string `json:"name"`
	LoginURL string `json:"login_url"`
}

type StrategiesResponse struct {
	Strategies []Strategy `json:"strategies"`
}

type Identity struct {
	Provider   string    `json:"provider"`
	ExternalID string    `json:"external_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
