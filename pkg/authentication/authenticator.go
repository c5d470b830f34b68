// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/monitoring"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/types"
)

// Result is what a strategy settles on: a user, or a redirect to follow
type Result struct {
	User        *types.User
	RedirectURL string
}

// Authenticator keeps the registered strategies and turns them into
// request interceptors
type Authenticator struct {
	mu         sync.RWMutex
	strategies map[string]StrategyInterface

	sessions SessionManagerInterface
	users    UserIdentityService

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Use registers a strategy under its name, replacing any previous one
func (a *Authenticator) Use(strategy StrategyInterface) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.strategies[strategy.Name()] = strategy
	a.logger.Infof("registered authentication strategy %s", strategy.Name())
}

func (a *Authenticator) Strategy(name string) (StrategyInterface, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s, ok := a.strategies[name]
	return s, ok
}

// Names returns the registered strategy names in lexical order
func (a *Authenticator) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.strategies))
	for name := range a.strategies {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Initialize attaches the session manager to the request so strategies
// can keep flow state and log users in
func (a *Authenticator) Initialize() Interceptor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := SessionsFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withSessions(r.Context(), a.sessions)))
		})
	}
}

// Session restores the user bound to the session, anonymous requests pass through
func (a *Authenticator) Session() Interceptor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := a.sessions.UserID(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := a.tracer.Start(r.Context(), "authentication.Authenticator.Session")
			defer span.End()

			user, err := a.users.FindUserByID(ctx, userID)
			if errors.Is(err, types.ErrUserNotFound) {
				a.logger.Debugf("session user %s no longer exists", userID)
				if err := a.Logout(w, r); err != nil {
					a.logger.Errorf("failed to clear session of removed user %s: %v", userID, err)
				}
				next.ServeHTTP(w, r)
				return
			}

			if err != nil {
				a.logger.Errorf("failed to restore session user: %v", err)
				a.jsonResponse(w, http.StatusInternalServerError, "failed to restore session")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// Authenticate runs the named strategy, on success the user is bound to
// the session (unless opts.NoSession) and to the request context
func (a *Authenticator) Authenticate(name string, opts AuthenticateOptions) Interceptor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFromContext(r.Context()); ok && opts.SkipIfAuthenticated {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := a.tracer.Start(r.Context(), "authentication.Authenticator.Authenticate")
			defer span.End()

			r = r.WithContext(ctx)

			strategy, ok := a.Strategy(name)
			if !ok {
				a.logger.Errorf("%v: %s", ErrStrategyNotFound, name)
				a.jsonResponse(w, http.StatusInternalServerError, ErrStrategyNotFound.Error())
				return
			}

			result, err := strategy.Authenticate(w, r)
			if err == nil && (result == nil || (result.User == nil && result.RedirectURL == "")) {
				err = ErrNoUser
			}

			if err != nil {
				if providerUnavailable(err) {
					a.reportAvailability(name, 0)
				}
				a.fail(w, r, name, opts, err)
				return
			}

			if result.RedirectURL != "" {
				http.Redirect(w, r, result.RedirectURL, http.StatusFound)
				return
			}

			if !opts.NoSession {
				if err := a.sessions.Login(w, r, result.User.ID); err != nil {
					a.logger.Errorf("failed to bind user to session: %v", err)
					a.jsonResponse(w, http.StatusInternalServerError, "failed to create session")
					return
				}
				a.logger.Security().SessionCreated(result.User.ID)
			}

			a.reportAvailability(name, 1)
			a.logger.Security().AuthnSuccess(result.User.ID, name)

			if opts.SuccessRedirect != "" {
				http.Redirect(w, r, opts.SuccessRedirect, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), result.User)))
		})
	}
}

// RequireUser rejects requests that reach it without an authenticated user
func (a *Authenticator) RequireUser() Interceptor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFromContext(r.Context()); !ok {
				a.logger.Security().AuthzFailure("anonymous", r.URL.Path)
				a.jsonResponse(w, http.StatusUnauthorized, "authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Logout drops the session, it is safe to call without one
func (a *Authenticator) Logout(w http.ResponseWriter, r *http.Request) error {
	userID, err := a.sessions.Logout(w, r)
	if err != nil {
		a.logger.Errorf("failed to clear session: %v", err)
		return err
	}

	if userID != "" {
		a.logger.Security().SessionTerminated(userID)
	}

	return nil
}

func (a *Authenticator) fail(w http.ResponseWriter, r *http.Request, name string, opts AuthenticateOptions, err error) {
	a.logger.Debugf("authentication with %s failed: %v", name, err)
	a.logger.Security().AuthnFailure(name, err.Error())

	if opts.FailureRedirect != "" {
		http.Redirect(w, r, opts.FailureRedirect, http.StatusFound)
		return
	}

	a.jsonResponse(w, http.StatusUnauthorized, "authentication failed")
}

// reportAvailability tracks whether the provider behind a strategy answers
func (a *Authenticator) reportAvailability(name string, value float64) {
	if err := a.monitor.SetDependencyAvailability(map[string]string{"component": "strategy_" + name}, value); err != nil {
		a.logger.Debugf("failed to set %s availability: %v", name, err)
	}
}

func (a *Authenticator) jsonResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  status,
		"message": message,
	}); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func NewAuthenticator(
	sessions SessionManagerInterface,
	users UserIdentityService,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Authenticator {
	return &Authenticator{
		strategies: make(map[string]StrategyInterface),
		sessions:   sessions,
		users:      users,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}
