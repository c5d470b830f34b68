// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"
	"strings"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/tracing"
)

const BearerStrategyName = "bearer"

// BearerStrategy authenticates API clients holding an access token issued
// by the provider behind the profile function
type BearerStrategy struct {
	profile ProfileFunc
	verify  VerifyFunc

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func (s *BearerStrategy) Name() string {
	return BearerStrategyName
}

func (s *BearerStrategy) Authenticate(w http.ResponseWriter, r *http.Request) (*Result, error) {
	ctx, span := s.tracer.Start(r.Context(), "authentication.BearerStrategy.Authenticate")
	defer span.End()

	token, found := getBearerToken(r.Header)
	if !found {
		return nil, ErrMissingToken
	}

	profile, err := s.profile(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.verify(ctx, token, "", profile)
	if err != nil {
		return nil, err
	}

	return &Result{User: user}, nil
}

func getBearerToken(headers http.Header) (string, bool) {
	bearer := headers.Get("Authorization")
	if bearer == "" {
		return "", false
	}

	// Only support "Bearer <token>" format (RFC 6750)
	if !strings.HasPrefix(bearer, "Bearer ") {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(bearer, "Bearer "))

	return token, token != ""
}

func NewBearerStrategy(profile ProfileFunc, verify VerifyFunc, tracer tracing.TracingInterface, logger logging.LoggerInterface) *BearerStrategy {
	return &BearerStrategy{
		profile: profile,
		verify:  verify,
		tracer:  tracer,
		logger:  logger,
	}
}
