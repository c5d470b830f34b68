// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// OAuth2Options configures an authorization code flow against any provider
type OAuth2Options struct {
	Name         string `validate:"required"`
	ClientID     string `validate:"required"`
	ClientSecret string
	AuthURL      string `validate:"required,url"`
	TokenURL     string `validate:"required,url"`
	CallbackURL  string `validate:"required,url"`
	Scopes       []string
}

// FacebookOptions configures the Facebook strategy
type FacebookOptions struct {
	ClientID     string `validate:"required"`
	ClientSecret string `validate:"required"`
	CallbackURL  string `validate:"required,url"`
	Scopes       []string
	// GraphURL overrides the Graph API base, mostly for tests
	GraphURL string `validate:"omitempty,url"`
}

// OIDCOptions configures the OpenID Connect strategy
type OIDCOptions struct {
	Issuer       string `validate:"required,url"`
	ClientID     string `validate:"required"`
	ClientSecret string
	CallbackURL  string `validate:"required,url"`
	Scopes       []string
}

// AuthenticateOptions drive what happens once a strategy settles
type AuthenticateOptions struct {
	SuccessRedirect string
	FailureRedirect string
	// NoSession skips binding the user to the session, for API credentials
	NoSession bool
	// SkipIfAuthenticated lets requests that already carry a user through
	SkipIfAuthenticated bool
}

func validateOptions(opts interface{}) error {
	if err := validate.Struct(opts); err != nil {
		return fmt.Errorf("invalid strategy options: %w", err)
	}
	return nil
}
