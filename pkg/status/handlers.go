// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime/debug"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/monitoring"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/internal/version"
)

const okValue = "ok"

// Checker reports whether a dependency is usable
type Checker func(ctx context.Context) error

type Status struct {
	Status    string     `json:"status"`
	BuildInfo *BuildInfo `json:"buildInfo,omitempty"`
}

type BuildInfo struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	Name       string `json:"name"`
}

type Readiness struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type API struct {
	checks map[string]Checker

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/status/ready", a.ready)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	a.jsonResponse(w, http.StatusOK, Status{Status: okValue, BuildInfo: buildInfo()})
}

func (a *API) ready(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.ready")
	defer span.End()

	resp := Readiness{Status: okValue, Checks: make(map[string]string, len(a.checks))}
	code := http.StatusOK

	names := make([]string, 0, len(a.checks))
	for name := range a.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := a.checks[name](ctx); err != nil {
			a.logger.Warnf("readiness check %s failed: %v", name, err)
			resp.Checks[name] = err.Error()
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}

		resp.Checks[name] = okValue
	}

	a.jsonResponse(w, code, resp)
}

func (a *API) jsonResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func buildInfo() *BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return &BuildInfo{Version: version.Version}
	}

	b := &BuildInfo{Version: version.Version, Name: info.Main.Path}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			b.CommitHash = s.Value
		}
	}

	return b
}

func NewAPI(checks map[string]Checker, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	if checks == nil {
		checks = make(map[string]Checker)
	}

	return &API{
		checks:  checks,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
