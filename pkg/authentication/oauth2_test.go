// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/session"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/types"
	"github.com/canonical/oauth2-login/pkg/mockprovider"
)

const oauth2Callback = "http://app.test/auth/thirdparty/oauth2/callback"

type oauth2Fixture struct {
	provider *httptest.Server
	sessions *session.Manager
	users    *MockUserIdentityService
	app      http.Handler
}

func newOAuth2Fixture(t *testing.T, ctrl *gomock.Controller) *oauth2Fixture {
	t.Helper()

	p := mockprovider.NewProvider(
		mockprovider.Client{ID: "client", Secret: "secret", RedirectURL: oauth2Callback},
		mockprovider.User{UserID: 7, Email: "jane@example.com", Name: "Jane"},
		tracing.NewNoopTracer(),
		logging.NewNoopLogger(),
	)

	mux := chi.NewMux()
	p.RegisterEndpoints(mux)

	provider := httptest.NewServer(mux)
	t.Cleanup(provider.Close)

	sessions := newTestSessions()
	users := NewMockUserIdentityService(ctrl)
	a := newTestAuthenticator(sessions, users)

	fetcher := NewOAuth2ProfileFetcher(provider.URL+"/verify", provider.Client(), tracing.NewNoopTracer(), logging.NewNoopLogger())

	mw, err := NewOAuth2Middleware(
		a,
		OAuth2Options{
			Name:         OAuth2StrategyName,
			ClientID:     "client",
			ClientSecret: "secret",
			AuthURL:      provider.URL + "/authorize",
			TokenURL:     provider.URL + "/token",
			CallbackURL:  oauth2Callback,
		},
		fetcher.FetchProfile,
		users,
		AuthenticateOptions{SuccessRedirect: "/auth/account", FailureRedirect: "/login"},
		provider.Client(),
		tracing.NewNoopTracer(),
		logging.NewNoopLogger(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mw.Name() != OAuth2StrategyName {
		t.Fatalf("expected strategy %s, got %s", OAuth2StrategyName, mw.Name())
	}

	app := chi.NewMux()
	app.Use(a.Initialize(), a.Session())
	app.With(mw.Value()).Get("/auth/thirdparty/oauth2", echoUser().ServeHTTP)
	app.With(mw.Value()).Get("/auth/thirdparty/oauth2/callback", echoUser().ServeHTTP)

	return &oauth2Fixture{provider: provider, sessions: sessions, users: users, app: app}
}

// start hits the login route and returns the response and the provider URL
// it redirects to
func (f *oauth2Fixture) start(t *testing.T) (*httptest.ResponseRecorder, *url.URL) {
	t.Helper()

	rr := httptest.NewRecorder()
	f.app.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/thirdparty/oauth2", nil))

	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect to the provider, got %d", rr.Code)
	}

	location, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("invalid location: %v", err)
	}

	return rr, location
}

// authorize follows the redirect to the provider and returns the callback URL
func (f *oauth2Fixture) authorize(t *testing.T, location *url.URL) *url.URL {
	t.Helper()

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}

	resp, err := client.Get(location.String())
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	resp.Body.Close()

	callback, err := url.Parse(resp.Header.Get("Location"))
	if err != nil || !strings.HasPrefix(callback.String(), oauth2Callback) {
		t.Fatalf("expected redirect to the callback, got %q", resp.Header.Get("Location"))
	}

	return callback
}

func TestOAuth2Strategy_CodeFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOAuth2Fixture(t, ctrl)

	f.users.EXPECT().FindOrCreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *types.Profile) (*types.User, error) {
			if p.ID != "7" || p.Provider != CustomOAuth2Provider || p.Email() != "jane@example.com" {
				return nil, errors.New("unexpected profile")
			}
			return &types.User{ID: "user-1", Email: p.Email()}, nil
		},
	)

	started, location := f.start(t)

	if location.Query().Get("client_id") != "client" || location.Query().Get("state") == "" {
		t.Fatalf("unexpected authorize url %s", location)
	}

	callback := f.authorize(t, location)

	req := withCookies(httptest.NewRequest(http.MethodGet, callback.String(), nil), started)

	rr := httptest.NewRecorder()
	f.app.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/auth/account" {
		t.Fatalf("expected redirect to /auth/account, got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	userID, ok := f.sessions.UserID(withCookies(httptest.NewRequest(http.MethodGet, "/", nil), started, rr))
	if !ok || userID != "user-1" {
		t.Errorf("expected user-1 in session, got %q", userID)
	}
}

func TestOAuth2Strategy_CallbackFailures(t *testing.T) {
	tests := []struct {
		name     string
		callback func(*url.URL) string
		cookies  bool
	}{
		{
			name: "state mismatch",
			callback: func(u *url.URL) string {
				q := u.Query()
				q.Set("state", "forged")
				u.RawQuery = q.Encode()
				return u.String()
			},
			cookies: true,
		},
		{
			name:     "state missing from session",
			callback: func(u *url.URL) string { return u.String() },
		},
		{
			name: "provider error",
			callback: func(*url.URL) string {
				return oauth2Callback + "?error=access_denied&error_description=denied"
			},
			cookies: true,
		},
		{
			name: "unknown code",
			callback: func(u *url.URL) string {
				q := u.Query()
				q.Set("code", "made-up")
				u.RawQuery = q.Encode()
				return u.String()
			},
			cookies: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newOAuth2Fixture(t, ctrl)

			started, location := f.start(t)
			callback := f.authorize(t, location)

			req := httptest.NewRequest(http.MethodGet, tt.callback(callback), nil)
			if tt.cookies {
				req = withCookies(req, started)
			}

			rr := httptest.NewRecorder()
			f.app.ServeHTTP(rr, req)

			if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/login" {
				t.Fatalf("expected redirect to /login, got %d %q", rr.Code, rr.Header().Get("Location"))
			}
		})
	}
}

func TestOAuth2Strategy_NotInitialized(t *testing.T) {
	s, err := NewOAuth2Strategy(
		OAuth2Options{
			Name:        OAuth2StrategyName,
			ClientID:    "client",
			AuthURL:     "http://localhost:9000/authorize",
			TokenURL:    "http://localhost:9000/token",
			CallbackURL: oauth2Callback,
		},
		nil, nil, nil,
		tracing.NewNoopTracer(),
		logging.NewNoopLogger(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.Authenticate(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestNewOAuth2Strategy_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts OAuth2Options
	}{
		{name: "empty", opts: OAuth2Options{}},
		{name: "missing client id", opts: OAuth2Options{Name: "oauth2", AuthURL: "http://a.test", TokenURL: "http://a.test", CallbackURL: "http://a.test"}},
		{name: "invalid auth url", opts: OAuth2Options{Name: "oauth2", ClientID: "c", AuthURL: "nope", TokenURL: "http://a.test", CallbackURL: "http://a.test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewOAuth2Strategy(tt.opts, nil, nil, nil, tracing.NewNoopTracer(), logging.NewNoopLogger()); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}
