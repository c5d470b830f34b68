// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "errors"

// ErrUserNotFound is returned when a session or identity link points to a
// user that no longer exists
var ErrUserNotFound = errors.New("user not found")
