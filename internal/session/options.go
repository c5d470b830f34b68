// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"crypto/sha256"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
)

// Keys derives the authentication and encryption keys from a single secret
func Keys(secret string) (hashKey, blockKey []byte) {
	h := sha256.Sum256([]byte("hash:" + secret))
	b := sha256.Sum256([]byte("block:" + secret))

	return h[:], b[:]
}

// Options returns the cookie options shared by every store
func Options(baseURL string, maxAge int) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   strings.HasPrefix(baseURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	}
}

// NewCookieStore keeps the whole session in an encrypted, signed cookie
func NewCookieStore(secret string, opts *sessions.Options) *sessions.CookieStore {
	store := sessions.NewCookieStore(Keys(secret))
	store.Options = opts
	store.MaxAge(opts.MaxAge)

	return store
}
