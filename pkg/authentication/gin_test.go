// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/canonical/oauth2-login/internal/types"
)

func TestToGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	a := newTestAuthenticator(newTestSessions(), nil)

	withUser := Interceptor(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Test-User") != "" {
				r = r.WithContext(WithUser(r.Context(), &types.User{ID: r.Header.Get("X-Test-User")}))
			}
			next.ServeHTTP(w, r)
		})
	})

	engine := gin.New()
	engine.Use(ToGin(a.Initialize()), ToGin(withUser), ToGin(a.RequireUser()))
	engine.GET("/api/v0/me", func(c *gin.Context) {
		user, _ := UserFromContext(c.Request.Context())
		c.JSON(http.StatusOK, MapProfile(user))
	})

	tests := []struct {
		name     string
		user     string
		expected int
	}{
		{name: "authenticated", user: "user-1", expected: http.StatusOK},
		{name: "anonymous is aborted", expected: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v0/me", nil)
			if tt.user != "" {
				req.Header.Set("X-Test-User", tt.user)
			}

			rr := httptest.NewRecorder()
			engine.ServeHTTP(rr, req)

			if rr.Code != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, rr.Code)
			}
		})
	}
}
