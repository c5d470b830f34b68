// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/tracing"
)

// Interceptor is the shape of a chi middleware
type Interceptor func(http.Handler) http.Handler

type InitMiddleware struct {
	authenticator *Authenticator
}

func (m *InitMiddleware) Value() Interceptor {
	return m.authenticator.Initialize()
}

func NewInitMiddleware(authenticator *Authenticator) *InitMiddleware {
	return &InitMiddleware{authenticator: authenticator}
}

type SessionMiddleware struct {
	authenticator *Authenticator
}

func (m *SessionMiddleware) Value() Interceptor {
	return m.authenticator.Session()
}

func NewSessionMiddleware(authenticator *Authenticator) *SessionMiddleware {
	return &SessionMiddleware{authenticator: authenticator}
}

// StrategyMiddleware exposes one registered strategy as an interceptor
type StrategyMiddleware struct {
	authenticator *Authenticator
	name          string
	options       AuthenticateOptions
}

func (m *StrategyMiddleware) Name() string {
	return m.name
}

func (m *StrategyMiddleware) Value() Interceptor {
	return m.authenticator.Authenticate(m.name, m.options)
}

// NewStrategyMiddleware registers strategy on the authenticator and exposes
// it with opts
func NewStrategyMiddleware(authenticator *Authenticator, strategy StrategyInterface, opts AuthenticateOptions) *StrategyMiddleware {
	authenticator.Use(strategy)

	return &StrategyMiddleware{authenticator: authenticator, name: strategy.Name(), options: opts}
}

type FacebookOAuth2Middleware struct {
	StrategyMiddleware
}

// NewFacebookOAuth2Middleware registers the Facebook strategy, verified
// against users, on the authenticator
func NewFacebookOAuth2Middleware(
	authenticator *Authenticator,
	facebookOptions FacebookOptions,
	users UserIdentityService,
	opts AuthenticateOptions,
	client *http.Client,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) (*FacebookOAuth2Middleware, error) {
	strategy, err := NewFacebookStrategy(facebookOptions, NewVerifyFunc(users), client, tracer, logger)
	if err != nil {
		return nil, err
	}

	return &FacebookOAuth2Middleware{*NewStrategyMiddleware(authenticator, strategy, opts)}, nil
}

type OAuth2Middleware struct {
	StrategyMiddleware
}

// NewOAuth2Middleware registers a generic OAuth2 strategy whose profiles
// come from profile and are verified against users
func NewOAuth2Middleware(
	authenticator *Authenticator,
	oauth2Options OAuth2Options,
	profile ProfileFunc,
	users UserIdentityService,
	opts AuthenticateOptions,
	client *http.Client,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) (*OAuth2Middleware, error) {
	strategy, err := NewOAuth2Strategy(oauth2Options, profile, NewVerifyFunc(users), client, tracer, logger)
	if err != nil {
		return nil, err
	}

	return &OAuth2Middleware{*NewStrategyMiddleware(authenticator, strategy, opts)}, nil
}

type OIDCMiddleware struct {
	StrategyMiddleware
}

func NewOIDCMiddleware(
	ctx context.Context,
	authenticator *Authenticator,
	oidcOptions OIDCOptions,
	users UserIdentityService,
	opts AuthenticateOptions,
	client *http.Client,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) (*OIDCMiddleware, error) {
	strategy, err := NewOIDCStrategy(ctx, oidcOptions, NewVerifyFunc(users), client, tracer, logger)
	if err != nil {
		return nil, err
	}

	return &OIDCMiddleware{*NewStrategyMiddleware(authenticator, strategy, opts)}, nil
}
