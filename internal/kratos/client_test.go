// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/monitoring"
	"github.com/canonical/oauth2-login/internal/tracing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, srv.Client(), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func TestClient_GetIdentityIDByEmail(t *testing.T) {
	tests := []struct {
		name       string
		response   interface{}
		status     int
		expectedID string
		expectErr  bool
	}{
		{
			name:       "found",
			response:   []map[string]interface{}{{"id": "identity-1", "schema_id": "default", "schema_url": "", "traits": map[string]interface{}{"email": "a@example.com"}}},
			status:     http.StatusOK,
			expectedID: "identity-1",
		},
		{
			name:     "not found",
			response: []map[string]interface{}{},
			status:   http.StatusOK,
		},
		{
			name:      "server error",
			response:  map[string]interface{}{"error": map[string]interface{}{"code": 500, "message": "boom"}},
			status:    http.StatusInternalServerError,
			expectErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("credentials_identifier") != "a@example.com" {
					t.Errorf("unexpected query %q", r.URL.RawQuery)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(test.status)
				_ = json.NewEncoder(w).Encode(test.response)
			})

			id, err := c.GetIdentityIDByEmail(context.Background(), "a@example.com")

			if test.expectErr != (err != nil) {
				t.Fatalf("expected error %v, got %v", test.expectErr, err)
			}

			if id != test.expectedID {
				t.Errorf("expected id %q, got %q", test.expectedID, id)
			}
		})
	}
}

func TestClient_GetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path != "/admin/identities/identity-1" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": map[string]interface{}{"code": 404, "message": "not found"}})
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":         "identity-1",
			"schema_id":  "default",
			"schema_url": "",
			"traits": map[string]interface{}{
				"email": "a@example.com",
				"name":  map[string]interface{}{"first": "Ada", "last": "Lovelace"},
			},
		})
	})

	user, err := c.GetUser(context.Background(), "identity-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID != "identity-1" || user.Email != "a@example.com" || user.Name != "Ada Lovelace" {
		t.Errorf("unexpected user %+v", user)
	}

	if _, err := c.GetUser(context.Background(), "missing"); !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("expected ErrIdentityNotFound, got %v", err)
	}
}
