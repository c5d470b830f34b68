// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mockprovider

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/session"
	"github.com/canonical/oauth2-login/internal/tracing"
)

// User is what the verify endpoint answers with
type User struct {
	UserID   int    `json:"userId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
}

// Client is the single OAuth2 client the provider accepts
type Client struct {
	ID          string
	Secret      string
	RedirectURL string
}

type grant struct {
	redirectURL string
	user        User
}

// Provider is an in memory OAuth2 authorization server that signs every
// request in as the same user
type Provider struct {
	mu     sync.Mutex
	codes  map[string]grant
	tokens map[string]User

	client Client
	user   User

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func (p *Provider) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/authorize", p.authorize)
	mux.Post("/token", p.token)
	mux.Get("/verify", p.verify)
}

func (p *Provider) authorize(w http.ResponseWriter, r *http.Request) {
	_, span := p.tracer.Start(r.Context(), "mockprovider.Provider.authorize")
	defer span.End()

	q := r.URL.Query()

	if q.Get("response_type") != "code" {
		p.jsonError(w, http.StatusBadRequest, "unsupported_response_type")
		return
	}

	if q.Get("client_id") != p.client.ID {
		p.jsonError(w, http.StatusBadRequest, "unauthorized_client")
		return
	}

	redirectURL := q.Get("redirect_uri")
	if redirectURL == "" {
		redirectURL = p.client.RedirectURL
	}

	if p.client.RedirectURL != "" && redirectURL != p.client.RedirectURL {
		p.jsonError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	target, err := url.Parse(redirectURL)
	if err != nil || redirectURL == "" {
		p.jsonError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	code, err := session.GenerateID()
	if err != nil {
		p.jsonError(w, http.StatusInternalServerError, "server_error")
		return
	}

	p.mu.Lock()
	p.codes[code] = grant{redirectURL: redirectURL, user: p.user}
	p.mu.Unlock()

	params := target.Query()
	params.Set("code", code)
	if state := q.Get("state"); state != "" {
		params.Set("state", state)
	}
	target.RawQuery = params.Encode()

	http.Redirect(w, r, target.String(), http.StatusFound)
}

func (p *Provider) token(w http.ResponseWriter, r *http.Request) {
	_, span := p.tracer.Start(r.Context(), "mockprovider.Provider.token")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		p.jsonError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	clientID, clientSecret, ok := r.BasicAuth()
	if !ok {
		clientID, clientSecret = r.PostForm.Get("client_id"), r.PostForm.Get("client_secret")
	}

	if clientID != p.client.ID || subtle.ConstantTimeCompare([]byte(clientSecret), []byte(p.client.Secret)) != 1 {
		p.jsonError(w, http.StatusUnauthorized, "invalid_client")
		return
	}

	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
	case "client_credentials":
		p.issue(w, p.user)
		return
	default:
		p.jsonError(w, http.StatusBadRequest, "unsupported_grant_type")
		return
	}

	code := r.PostForm.Get("code")

	p.mu.Lock()
	g, found := p.codes[code]
	delete(p.codes, code)
	p.mu.Unlock()

	if !found {
		p.jsonError(w, http.StatusBadRequest, "invalid_grant")
		return
	}

	if uri := r.PostForm.Get("redirect_uri"); uri != "" && uri != g.redirectURL {
		p.jsonError(w, http.StatusBadRequest, "invalid_grant")
		return
	}

	p.issue(w, g.user)
}

func (p *Provider) issue(w http.ResponseWriter, user User) {
	accessToken, err := session.GenerateID()
	if err != nil {
		p.jsonError(w, http.StatusInternalServerError, "server_error")
		return
	}

	refreshToken, err := session.GenerateID()
	if err != nil {
		p.jsonError(w, http.StatusInternalServerError, "server_error")
		return
	}

	p.mu.Lock()
	p.tokens[accessToken] = user
	p.mu.Unlock()

	p.logger.Debugf("issued access token for user %d", user.UserID)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "Bearer",
		"expires_in":    3600,
	})
}

func (p *Provider) verify(w http.ResponseWriter, r *http.Request) {
	_, span := p.tracer.Start(r.Context(), "mockprovider.Provider.verify")
	defer span.End()

	token := r.URL.Query().Get("access_token")
	if token == "" {
		token = strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	}

	p.mu.Lock()
	user, found := p.tokens[token]
	p.mu.Unlock()

	if !found {
		p.jsonError(w, http.StatusUnauthorized, "invalid_token")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}

// IssueToken registers an access token for the configured user, for API
// clients that skip the browser flow
func (p *Provider) IssueToken() (string, error) {
	token, err := session.GenerateID()
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.tokens[token] = p.user
	p.mu.Unlock()

	return token, nil
}

func (p *Provider) jsonError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": code}); err != nil {
		p.logger.Errorf("failed to encode response: %v", err)
	}
}

func NewProvider(client Client, user User, tracer tracing.TracingInterface, logger logging.LoggerInterface) *Provider {
	return &Provider{
		codes:  make(map[string]grant),
		tokens: make(map[string]User),
		client: client,
		user:   user,
		tracer: tracer,
		logger: logger,
	}
}
