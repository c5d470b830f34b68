// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/monitoring"
	"github.com/canonical/oauth2-login/internal/session"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/types"
	"github.com/canonical/oauth2-login/pkg/authentication"
	"github.com/canonical/oauth2-login/pkg/login"
	"github.com/canonical/oauth2-login/pkg/mockprovider"
	"github.com/canonical/oauth2-login/pkg/status"
)

const callbackURL = "http://app.test/auth/thirdparty/oauth2/callback"

type routerFunc func(RouterConfig, tracing.TracingInterface, monitoring.MonitorInterface, logging.LoggerInterface) http.Handler

// carry copies the cookies set by responses onto req, later ones win
func carry(req *http.Request, responses ...*httptest.ResponseRecorder) *http.Request {
	jar := make(map[string]*http.Cookie)
	for _, rr := range responses {
		for _, c := range rr.Result().Cookies() {
			jar[c.Name] = c
		}
	}

	for _, c := range jar {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}

	return req
}

func newTestConfig(t *testing.T, ctrl *gomock.Controller) RouterConfig {
	t.Helper()

	p := mockprovider.NewProvider(
		mockprovider.Client{ID: "client", Secret: "secret", RedirectURL: callbackURL},
		mockprovider.User{UserID: 7, Email: "jane@example.com", Name: "Jane"},
		tracing.NewNoopTracer(),
		logging.NewNoopLogger(),
	)

	mux := chi.NewMux()
	p.RegisterEndpoints(mux)

	provider := httptest.NewServer(mux)
	t.Cleanup(provider.Close)

	users := authentication.NewMockUserIdentityService(ctrl)
	users.EXPECT().FindOrCreateUser(gomock.Any(), gomock.Any()).Return(&types.User{ID: "user-1", Email: "jane@example.com"}, nil)
	users.EXPECT().FindUserByID(gomock.Any(), "user-1").Return(&types.User{ID: "user-1", Email: "jane@example.com"}, nil).AnyTimes()

	sessions := session.NewManager(
		session.NewCookieStore("a-very-secret-session-key", session.Options("http://app.test", 3600)),
		tracing.NewNoopTracer(),
		logging.NewNoopLogger(),
	)

	a := authentication.NewAuthenticator(sessions, users, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	fetcher := authentication.NewOAuth2ProfileFetcher(provider.URL+"/verify", provider.Client(), tracing.NewNoopTracer(), logging.NewNoopLogger())

	mw, err := authentication.NewOAuth2Middleware(
		a,
		authentication.OAuth2Options{
			Name:         authentication.OAuth2StrategyName,
			ClientID:     "client",
			ClientSecret: "secret",
			AuthURL:      provider.URL + "/authorize",
			TokenURL:     provider.URL + "/token",
			CallbackURL:  callbackURL,
		},
		fetcher.FetchProfile,
		users,
		authentication.AuthenticateOptions{SuccessRedirect: login.SuccessRedirect, FailureRedirect: login.FailureRedirect},
		provider.Client(),
		tracing.NewNoopTracer(),
		logging.NewNoopLogger(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return RouterConfig{
		Authenticator: a,
		Identities:    login.NewMockIdentityListerInterface(ctrl),
		Flows:         []login.StrategyMiddlewareInterface{mw},
		Checks:        map[string]status.Checker{},
	}
}

func TestRouter_OAuth2Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		newRouter routerFunc
	}{
		{name: "chi", newRouter: NewRouter},
		{name: "gin", newRouter: NewGinRouter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router := tt.newRouter(newTestConfig(t, ctrl), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))

			var strategies login.StrategiesResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &strategies); err != nil || rr.Code != http.StatusOK {
				t.Fatalf("expected the strategy list, got %d %s", rr.Code, rr.Body.String())
			}
			if len(strategies.Strategies) != 1 || strategies.Strategies[0].LoginURL != "/auth/thirdparty/oauth2" {
				t.Fatalf("unexpected strategies %+v", strategies.Strategies)
			}

			started := httptest.NewRecorder()
			router.ServeHTTP(started, httptest.NewRequest(http.MethodGet, "/auth/thirdparty/oauth2", nil))

			if started.Code != http.StatusFound {
				t.Fatalf("expected redirect to the provider, got %d", started.Code)
			}

			client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}

			resp, err := client.Get(started.Header().Get("Location"))
			if err != nil {
				t.Fatalf("authorize failed: %v", err)
			}
			resp.Body.Close()

			callback, err := url.Parse(resp.Header.Get("Location"))
			if err != nil || !strings.HasPrefix(callback.String(), callbackURL) {
				t.Fatalf("expected redirect to the callback, got %q", resp.Header.Get("Location"))
			}

			finished := httptest.NewRecorder()
			router.ServeHTTP(finished, carry(httptest.NewRequest(http.MethodGet, callback.RequestURI(), nil), started))

			if finished.Code != http.StatusFound || finished.Header().Get("Location") != login.SuccessRedirect {
				t.Fatalf("expected redirect to %s, got %d %q", login.SuccessRedirect, finished.Code, finished.Header().Get("Location"))
			}

			account := httptest.NewRecorder()
			router.ServeHTTP(account, carry(httptest.NewRequest(http.MethodGet, login.SuccessRedirect, nil), started, finished))

			if account.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", account.Code)
			}

			var profile authentication.UserProfile
			if err := json.Unmarshal(account.Body.Bytes(), &profile); err != nil {
				t.Fatalf("failed to decode profile: %v", err)
			}

			if profile.SecurityID != "user-1" {
				t.Errorf("expected user-1, got %q", profile.SecurityID)
			}
		})
	}
}

func TestRouter_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		target         string
		expectedStatus int
	}{
		{name: "metrics", target: "/api/v0/metrics", expectedStatus: http.StatusOK},
		{name: "status", target: "/api/v0/status", expectedStatus: http.StatusOK},
		{name: "anonymous account", target: "/auth/account", expectedStatus: http.StatusUnauthorized},
		{name: "unknown provider", target: "/auth/thirdparty/github", expectedStatus: http.StatusNotFound},
		{name: "unknown route", target: "/nope", expectedStatus: http.StatusNotFound},
	}

	for _, framework := range []string{FrameworkChi, FrameworkGin} {
		for _, tt := range tests {
			t.Run(framework+"/"+tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				sessions := session.NewManager(
					session.NewCookieStore("a-very-secret-session-key", session.Options("http://app.test", 3600)),
					tracing.NewNoopTracer(),
					logging.NewNoopLogger(),
				)
				a := authentication.NewAuthenticator(sessions, authentication.NewMockUserIdentityService(ctrl), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

				router := NewHandler(
					framework,
					RouterConfig{Authenticator: a, Identities: login.NewMockIdentityListerInterface(ctrl)},
					tracing.NewNoopTracer(),
					monitoring.NewNoopMonitor("test"),
					logging.NewNoopLogger(),
				)

				rr := httptest.NewRecorder()
				router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

				if rr.Code != tt.expectedStatus {
					t.Errorf("expected status %d, got %d", tt.expectedStatus, rr.Code)
				}
			})
		}
	}
}
