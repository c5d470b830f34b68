// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const idSize = 32

// GenerateID returns a random, URL safe identifier with 256 bits of entropy
func GenerateID() (string, error) {
	b := make([]byte, idSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
