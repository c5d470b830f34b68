// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
)

var (
	ErrStrategyNotFound = errors.New("authentication strategy not found")
	ErrNotInitialized   = errors.New("authentication is not initialized for this request")
	ErrInvalidState     = errors.New("invalid oauth2 state")
	ErrInvalidNonce     = errors.New("invalid oidc nonce")
	ErrMissingToken     = errors.New("missing bearer token")
	ErrMissingIDToken   = errors.New("missing id_token in token response")
	ErrNoUser           = errors.New("strategy resolved no user")
)

// StatusError is returned when a profile endpoint answers with a non 2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("profile endpoint returned status %d", e.StatusCode)
}

// ProviderError carries the error an authorization server sent back to the callback
type ProviderError struct {
	Code        string
	Description string
}

func (e *ProviderError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("authorization server error: %s", e.Code)
	}
	return fmt.Sprintf("authorization server error: %s: %s", e.Code, e.Description)
}

// providerUnavailable tells provider outages apart from rejected logins
func providerUnavailable(err error) bool {
	var (
		urlErr      *url.Error
		statusErr   *StatusError
		retrieveErr *oauth2.RetrieveError
	)

	switch {
	case errors.As(err, &urlErr):
		return true
	case errors.As(err, &statusErr):
		return statusErr.StatusCode >= http.StatusInternalServerError
	case errors.As(err, &retrieveErr):
		return retrieveErr.Response != nil && retrieveErr.Response.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}
