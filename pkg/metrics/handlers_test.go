// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/oauth2-login/internal/logging"
	monitor "github.com/canonical/oauth2-login/internal/monitoring/prometheus"
)

func TestMetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := monitor.NewMonitorWithRegisterer("oauth2-login", registry, logging.NewNoopLogger())
	if err := m.SetDependencyAvailability(map[string]string{"component": "kratos"}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mux := chi.NewMux()
	NewAPIWithGatherer(registry, logging.NewNoopLogger()).RegisterEndpoints(mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), "dependency_available") {
		t.Errorf("expected dependency_available in output, got %s", body)
	}
}
