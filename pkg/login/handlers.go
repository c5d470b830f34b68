// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package login

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/pkg/authentication"
)

const (
	SuccessRedirect = "/auth/account"
	FailureRedirect = "/login"
)

type API struct {
	authenticator AuthenticatorInterface
	identities    IdentityListerInterface
	flows         []StrategyMiddlewareInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/login", a.strategies)

	for _, flow := range a.flows {
		prefix := "/auth/thirdparty/" + flow.Name()

		mux.With(flow.Value()).Get(prefix, a.account)
		mux.With(flow.Value()).Get(prefix+"/callback", a.account)
	}

	mux.Get("/auth/thirdparty/{provider}", a.unknownProvider)
	mux.Get("/auth/thirdparty/{provider}/callback", a.unknownProvider)

	mux.With(a.authenticator.RequireUser()).Get("/auth/account", a.account)

	mux.Get("/logout", a.logout)
	mux.Post("/logout", a.logout)

	mux.Group(func(r chi.Router) {
		r.Use(a.bearer, a.authenticator.RequireUser())

		r.Get("/api/v0/me", a.account)
		r.Get("/api/v0/me/identities", a.listIdentities)
	})
}

func (a *API) strategies(w http.ResponseWriter, r *http.Request) {
	resp := StrategiesResponse{Strategies: make([]Strategy, 0, len(a.flows))}

	for _, flow := range a.flows {
		resp.Strategies = append(resp.Strategies, Strategy{Name: flow.Name(), LoginURL: "/auth/thirdparty/" + flow.Name()})
	}

	a.jsonResponse(w, http.StatusOK, resp)
}

func (a *API) unknownProvider(w http.ResponseWriter, r *http.Request) {
	a.jsonResponse(w, http.StatusNotFound, Response{Status: http.StatusNotFound, Message: "unknown provider"})
}

func (a *API) account(w http.ResponseWriter, r *http.Request) {
	user, ok := authentication.UserFromContext(r.Context())
	if !ok {
		a.jsonResponse(w, http.StatusUnauthorized, Response{Status: http.StatusUnauthorized, Message: "authentication required"})
		return
	}

	a.jsonResponse(w, http.StatusOK, authentication.MapProfile(user))
}

func (a *API) listIdentities(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "login.API.listIdentities")
	defer span.End()

	userID, _ := authentication.GetUserID(ctx)

	identities, err := a.identities.ListIdentities(ctx, userID)
	if err != nil {
		a.logger.Errorf("failed to list identities of %s: %v", userID, err)
		a.jsonResponse(w, http.StatusInternalServerError, Response{Status: http.StatusInternalServerError, Message: "failed to list identities"})
		return
	}

	resp := make([]Identity, 0, len(identities))
	for _, i := range identities {
		resp = append(resp, Identity{
			Provider:   i.Provider,
			ExternalID: i.ExternalID,
			CreatedAt:  i.CreatedAt,
			UpdatedAt:  i.UpdatedAt,
		})
	}

	a.jsonResponse(w, http.StatusOK, resp)
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.authenticator.Logout(w, r); err != nil {
		a.jsonResponse(w, http.StatusInternalServerError, Response{Status: http.StatusInternalServerError, Message: "failed to log out"})
		return
	}

	http.Redirect(w, r, FailureRedirect, http.StatusFound)
}

// bearer lets API clients without a session authenticate with an access
// token, when the bearer strategy is enabled
func (a *API) bearer(next http.Handler) http.Handler {
	if _, ok := a.authenticator.Strategy(authentication.BearerStrategyName); !ok {
		return next
	}

	authenticated := a.authenticator.Authenticate(
		authentication.BearerStrategyName,
		authentication.AuthenticateOptions{NoSession: true, SkipIfAuthenticated: true},
	)(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasUser := authentication.UserFromContext(r.Context())
		if hasUser || r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		authenticated.ServeHTTP(w, r)
	})
}

func (a *API) jsonResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

// NewAPI serves the login routes, every flow is mounted under
// /auth/thirdparty/<name> in the given order
func NewAPI(
	authenticator AuthenticatorInterface,
	identities IdentityListerInterface,
	flows []StrategyMiddlewareInterface,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		authenticator: authenticator,
		identities:    identities,
		flows:         flows,
		tracer:        tracer,
		logger:        logger,
	}
}
