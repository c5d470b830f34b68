// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/canonical/oauth2-login/internal/logging"
)

type API struct {
	handler http.Handler
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/metrics", a.prometheusHTTP)
}

func (a *API) prometheusHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func NewAPI(logger logging.LoggerInterface) *API {
	return NewAPIWithGatherer(prometheus.DefaultGatherer, logger)
}

// NewAPIWithGatherer exposes the metrics of g instead of the default registry
func NewAPIWithGatherer(g prometheus.Gatherer, logger logging.LoggerInterface) *API {
	return &API{
		handler: promhttp.HandlerFor(g, promhttp.HandlerOpts{}),
		logger:  logger,
	}
}
