// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/types"
)

const (
	FacebookStrategyName = "facebook"

	defaultGraphURL = "https://graph.facebook.com/v19.0"
)

type facebookProfileFetcher struct {
	graphURL string
	client   HTTPClientInterface
	tracer   tracing.TracingInterface
}

func (f *facebookProfileFetcher) FetchProfile(ctx context.Context, accessToken string) (*types.Profile, error) {
	ctx, span := f.tracer.Start(ctx, "authentication.facebookProfileFetcher.FetchProfile")
	defer span.End()

	raw, err := getJSON(ctx, f.client, f.graphURL+"/me?fields=id,name,email", accessToken)
	if err != nil {
		return nil, err
	}

	profile := &types.Profile{
		ID:       stringify(raw["id"]),
		Provider: FacebookStrategyName,
		Raw:      raw,
	}

	profile.DisplayName, _ = raw["name"].(string)
	if email, ok := raw["email"].(string); ok && email != "" {
		profile.Emails = []types.Email{{Value: email}}
	}

	return profile, nil
}

// NewFacebookStrategy is the authorization code flow against Facebook,
// profiles come from the Graph API
func NewFacebookStrategy(
	opts FacebookOptions,
	verify VerifyFunc,
	client *http.Client,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) (*OAuth2Strategy, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if client == nil {
		client = http.DefaultClient
	}

	scopes := opts.Scopes
	if len(scopes) == 0 {
		scopes = []string{"email"}
	}

	graphURL := strings.TrimSuffix(opts.GraphURL, "/")
	if graphURL == "" {
		graphURL = defaultGraphURL
	}

	config := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		RedirectURL:  opts.CallbackURL,
		Scopes:       scopes,
		Endpoint:     facebook.Endpoint,
	}

	fetcher := &facebookProfileFetcher{graphURL: graphURL, client: client, tracer: tracer}

	fromToken := func(ctx context.Context, token *oauth2.Token, _ string) (*types.Profile, error) {
		return fetcher.FetchProfile(ctx, token.AccessToken)
	}

	return newOAuth2Strategy(FacebookStrategyName, config, fromToken, verify, client, tracer, logger), nil
}
