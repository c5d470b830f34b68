// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/session"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/types"
)

const OAuth2StrategyName = "oauth2"

// tokenProfileFunc resolves the profile once the code has been exchanged,
// nonce is empty unless the strategy asked for one
type tokenProfileFunc func(ctx context.Context, token *oauth2.Token, nonce string) (*types.Profile, error)

// OAuth2Strategy runs the authorization code flow, keeping state (and
// nonce, for OIDC) in the session between redirect and callback
type OAuth2Strategy struct {
	name     string
	config   *oauth2.Config
	client   *http.Client
	useNonce bool

	profile tokenProfileFunc
	verify  VerifyFunc

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func (s *OAuth2Strategy) Name() string {
	return s.name
}

func (s *OAuth2Strategy) stateKey() string {
	return s.name + ":state"
}

func (s *OAuth2Strategy) nonceKey() string {
	return s.name + ":nonce"
}

func (s *OAuth2Strategy) Authenticate(w http.ResponseWriter, r *http.Request) (*Result, error) {
	ctx, span := s.tracer.Start(r.Context(), "authentication.OAuth2Strategy.Authenticate")
	defer span.End()

	sessions, ok := SessionsFromContext(r.Context())
	if !ok {
		return nil, ErrNotInitialized
	}

	q := r.URL.Query()
	if code := q.Get("error"); code != "" {
		return nil, &ProviderError{Code: code, Description: q.Get("error_description")}
	}

	code := q.Get("code")
	if code == "" {
		return s.redirect(w, r, sessions)
	}

	expected, found, err := sessions.PopValue(w, r, s.stateKey())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth2 state: %w", err)
	}

	if !found || subtle.ConstantTimeCompare([]byte(q.Get("state")), []byte(expected)) != 1 {
		return nil, ErrInvalidState
	}

	var nonce string
	if s.useNonce {
		if nonce, _, err = sessions.PopValue(w, r, s.nonceKey()); err != nil {
			return nil, fmt.Errorf("failed to read oidc nonce: %w", err)
		}
	}

	token, err := s.config.Exchange(context.WithValue(ctx, oauth2.HTTPClient, s.client), code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	profile, err := s.profile(ctx, token, nonce)
	if err != nil {
		return nil, err
	}

	user, err := s.verify(ctx, token.AccessToken, token.RefreshToken, profile)
	if err != nil {
		return nil, err
	}

	return &Result{User: user}, nil
}

func (s *OAuth2Strategy) redirect(w http.ResponseWriter, r *http.Request, sessions SessionManagerInterface) (*Result, error) {
	state, err := session.GenerateID()
	if err != nil {
		return nil, err
	}

	if err := sessions.SetValue(w, r, s.stateKey(), state); err != nil {
		return nil, fmt.Errorf("failed to store oauth2 state: %w", err)
	}

	var opts []oauth2.AuthCodeOption
	if s.useNonce {
		nonce, err := session.GenerateID()
		if err != nil {
			return nil, err
		}

		if err := sessions.SetValue(w, r, s.nonceKey(), nonce); err != nil {
			return nil, fmt.Errorf("failed to store oidc nonce: %w", err)
		}

		opts = append(opts, oauth2.SetAuthURLParam("nonce", nonce))
	}

	return &Result{RedirectURL: s.config.AuthCodeURL(state, opts...)}, nil
}

func newOAuth2Strategy(
	name string,
	config *oauth2.Config,
	profile tokenProfileFunc,
	verify VerifyFunc,
	client *http.Client,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *OAuth2Strategy {
	if client == nil {
		client = http.DefaultClient
	}

	return &OAuth2Strategy{
		name:    name,
		config:  config,
		client:  client,
		profile: profile,
		verify:  verify,
		tracer:  tracer,
		logger:  logger,
	}
}

// NewOAuth2Strategy builds the authorization code strategy for a generic
// OAuth2 provider, the profile is resolved from the access token
func NewOAuth2Strategy(
	opts OAuth2Options,
	profile ProfileFunc,
	verify VerifyFunc,
	client *http.Client,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) (*OAuth2Strategy, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	config := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		RedirectURL:  opts.CallbackURL,
		Scopes:       opts.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  opts.AuthURL,
			TokenURL: opts.TokenURL,
		},
	}

	fromToken := func(ctx context.Context, token *oauth2.Token, _ string) (*types.Profile, error) {
		return profile(ctx, token.AccessToken)
	}

	return newOAuth2Strategy(opts.Name, config, fromToken, verify, client, tracer, logger), nil
}
