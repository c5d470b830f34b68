// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/types"
)

const OIDCStrategyName = "oidc"

type idTokenClaims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Username      string `json:"preferred_username"`
}

// NewProvider creates an OIDC provider using the issuer's well-known configuration
func NewProvider(ctx context.Context, issuer string, client *http.Client) (*oidc.Provider, error) {
	if client != nil {
		ctx = oidc.ClientContext(ctx, client)
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %v", err)
	}

	return provider, nil
}

func idTokenProfile(verifier *oidc.IDTokenVerifier, client *http.Client) tokenProfileFunc {
	return func(ctx context.Context, token *oauth2.Token, nonce string) (*types.Profile, error) {
		rawIDToken, ok := token.Extra("id_token").(string)
		if !ok || rawIDToken == "" {
			return nil, ErrMissingIDToken
		}

		if client != nil {
			ctx = oidc.ClientContext(ctx, client)
		}

		idToken, err := verifier.Verify(ctx, rawIDToken)
		if err != nil {
			return nil, fmt.Errorf("failed to verify id_token: %w", err)
		}

		if nonce == "" || subtle.ConstantTimeCompare([]byte(idToken.Nonce), []byte(nonce)) != 1 {
			return nil, ErrInvalidNonce
		}

		var claims idTokenClaims
		if err := idToken.Claims(&claims); err != nil {
			return nil, fmt.Errorf("failed to extract claims: %w", err)
		}

		var raw map[string]interface{}
		if err := idToken.Claims(&raw); err != nil {
			return nil, fmt.Errorf("failed to extract claims: %w", err)
		}

		profile := &types.Profile{
			ID:          claims.Subject,
			Provider:    OIDCStrategyName,
			DisplayName: claims.Name,
			Raw:         raw,
		}

		if profile.DisplayName == "" {
			profile.DisplayName = claims.Username
		}

		// an unverified address must not match an existing account
		if claims.Email != "" && claims.EmailVerified {
			profile.Emails = []types.Email{{Value: claims.Email}}
		}

		return profile, nil
	}
}

func newOIDCStrategy(
	opts OIDCOptions,
	endpoint oauth2.Endpoint,
	verifier *oidc.IDTokenVerifier,
	verify VerifyFunc,
	client *http.Client,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *OAuth2Strategy {
	scopes := opts.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "email", "profile"}
	}

	config := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		RedirectURL:  opts.CallbackURL,
		Scopes:       scopes,
		Endpoint:     endpoint,
	}

	s := newOAuth2Strategy(OIDCStrategyName, config, idTokenProfile(verifier, client), verify, client, tracer, logger)
	s.useNonce = true

	return s
}

// NewOIDCStrategy discovers the issuer and returns an authorization code
// strategy that resolves profiles from the verified ID token
func NewOIDCStrategy(
	ctx context.Context,
	opts OIDCOptions,
	verify VerifyFunc,
	client *http.Client,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) (*OAuth2Strategy, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	logger.Infof("Using OIDC discovery for issuer: %s", opts.Issuer)

	provider, err := NewProvider(ctx, opts.Issuer, client)
	if err != nil {
		return nil, err
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: opts.ClientID})

	return newOIDCStrategy(opts, provider.Endpoint(), verifier, verify, client, tracer, logger), nil
}
