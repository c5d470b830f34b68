// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/types"
)

func TestFacebookOAuth2Middleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := newTestAuthenticator(newTestSessions(), nil)

	mw, err := NewFacebookOAuth2Middleware(
		a,
		FacebookOptions{
			ClientID:     "fb-client",
			ClientSecret: "fb-secret",
			CallbackURL:  "http://app.test/auth/thirdparty/facebook/callback",
		},
		NewMockUserIdentityService(ctrl),
		AuthenticateOptions{SuccessRedirect: "/auth/account", FailureRedirect: "/login"},
		nil,
		tracing.NewNoopTracer(),
		logging.NewNoopLogger(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := a.Strategy(FacebookStrategyName); !ok {
		t.Fatal("expected the facebook strategy to be registered")
	}

	rr := httptest.NewRecorder()
	chain(echoUser(), NewInitMiddleware(a).Value(), NewSessionMiddleware(a).Value(), mw.Value()).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/thirdparty/facebook", nil))

	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rr.Code)
	}

	location, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("invalid location: %v", err)
	}

	if location.Host != "www.facebook.com" {
		t.Errorf("expected redirect to facebook, got %s", location)
	}

	q := location.Query()
	if q.Get("client_id") != "fb-client" || q.Get("scope") != "email" || q.Get("state") == "" {
		t.Errorf("unexpected authorization request %s", location)
	}
}

func TestFacebookOAuth2Middleware_InvalidOptions(t *testing.T) {
	a := newTestAuthenticator(newTestSessions(), nil)

	_, err := NewFacebookOAuth2Middleware(a, FacebookOptions{ClientID: "fb-client"}, nil, AuthenticateOptions{}, nil, tracing.NewNoopTracer(), logging.NewNoopLogger())
	if err == nil {
		t.Fatal("expected error but got none")
	}

	if len(a.Names()) != 0 {
		t.Errorf("expected no strategy to be registered, got %v", a.Names())
	}
}

func TestFacebookProfileFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" || r.URL.Query().Get("fields") != "id,name,email" {
			t.Errorf("unexpected graph request %s", r.URL)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "10001", "name": "Jane Doe", "email": "jane@example.com"}`))
	}))
	defer srv.Close()

	f := &facebookProfileFetcher{graphURL: srv.URL, client: srv.Client(), tracer: tracing.NewNoopTracer()}

	profile, err := f.FetchProfile(context.Background(), "fb-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := types.Profile{ID: "10001", Provider: FacebookStrategyName, DisplayName: "Jane Doe"}
	if profile.ID != expected.ID || profile.Provider != expected.Provider || profile.DisplayName != expected.DisplayName {
		t.Errorf("expected %+v, got %+v", expected, profile)
	}

	if profile.Email() != "jane@example.com" {
		t.Errorf("expected email, got %q", profile.Email())
	}
}

func TestInitAndSessionMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := NewMockUserIdentityService(ctrl)
	users.EXPECT().FindUserByID(gomock.Any(), "user-1").Return(&types.User{ID: "user-1"}, nil)

	sessions := newTestSessions()
	a := newTestAuthenticator(sessions, users)

	login := httptest.NewRecorder()
	if err := sessions.Login(login, httptest.NewRequest(http.MethodGet, "/", nil), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rr := httptest.NewRecorder()
	chain(echoUser(), NewInitMiddleware(a).Value(), NewSessionMiddleware(a).Value()).
		ServeHTTP(rr, withCookies(httptest.NewRequest(http.MethodGet, "/auth/account", nil), login))

	if rr.Code != http.StatusOK || rr.Body.String() != "user-1" {
		t.Errorf("expected user-1, got %d %q", rr.Code, rr.Body.String())
	}
}
