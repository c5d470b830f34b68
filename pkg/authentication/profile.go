// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/types"
)

// CustomOAuth2Provider tags profiles resolved through the verify endpoint
const CustomOAuth2Provider = "custom-oauth2"

const maxErrorBodyBytes = 1 << 10

// ProfileFunc resolves the provider profile an access token belongs to
type ProfileFunc func(ctx context.Context, accessToken string) (*types.Profile, error)

// OAuth2ProfileFetcher calls the verify endpoint of the custom OAuth2 provider
type OAuth2ProfileFetcher struct {
	verifyURL string
	client    HTTPClientInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

// FetchProfile issues a single GET against the verify endpoint, errors
// from the HTTP client are returned as they are
func (f *OAuth2ProfileFetcher) FetchProfile(ctx context.Context, accessToken string) (*types.Profile, error) {
	ctx, span := f.tracer.Start(ctx, "authentication.OAuth2ProfileFetcher.FetchProfile")
	defer span.End()

	raw, err := getJSON(ctx, f.client, f.verifyURL, accessToken)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			f.logger.Warnf("profile endpoint %s answered %d: %s", f.verifyURL, statusErr.StatusCode, statusErr.Body)
		}
		return nil, err
	}

	return reshapeProfile(raw), nil
}

func reshapeProfile(raw map[string]interface{}) *types.Profile {
	profile := &types.Profile{
		ID:       stringify(raw["userId"]),
		Provider: CustomOAuth2Provider,
		Raw:      raw,
	}

	if email, ok := raw["email"].(string); ok {
		profile.Emails = []types.Email{{Value: email}}
	}

	for _, k := range []string{"name", "username"} {
		if name, ok := raw[k].(string); ok && name != "" {
			profile.DisplayName = name
			break
		}
	}

	return profile
}

// getJSON performs GET u?access_token=<token> with the token as bearer
// credentials and decodes the JSON object it answers with
func getJSON(ctx context.Context, client HTTPClientInterface, u, accessToken string) (map[string]interface{}, error) {
	endpoint, err := url.Parse(u)
	if err != nil {
		return nil, fmt.Errorf("invalid profile url: %w", err)
	}

	q := endpoint.Query()
	q.Set("access_token", accessToken)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var raw map[string]interface{}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	if raw == nil {
		raw = make(map[string]interface{})
	}

	return raw, nil
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// NewOAuth2ProfileFetcher returns a fetcher for the verify endpoint, the
// client is used as is and owns any timeout policy
func NewOAuth2ProfileFetcher(verifyURL string, client HTTPClientInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *OAuth2ProfileFetcher {
	if client == nil {
		client = http.DefaultClient
	}

	return &OAuth2ProfileFetcher{
		verifyURL: verifyURL,
		client:    client,
		tracer:    tracer,
		logger:    logger,
	}
}
