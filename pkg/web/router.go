// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gin-gonic/gin"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/monitoring"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/pkg/authentication"
	"github.com/canonical/oauth2-login/pkg/login"
	"github.com/canonical/oauth2-login/pkg/metrics"
	"github.com/canonical/oauth2-login/pkg/status"
)

const (
	FrameworkChi = "chi"
	FrameworkGin = "gin"
)

type RouterConfig struct {
	Authenticator  *authentication.Authenticator
	Identities     login.IdentityListerInterface
	Flows          []login.StrategyMiddlewareInterface
	Checks         map[string]status.Checker
	AllowedOrigins []string
}

// interceptors run on every request, in order
func interceptors(cfg RouterConfig) chi.Middlewares {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return chi.Middlewares{
		middleware.RequestID,
		middlewareCORS(origins),
		authentication.NewInitMiddleware(cfg.Authenticator).Value(),
		authentication.NewSessionMiddleware(cfg.Authenticator).Value(),
	}
}

func registerAPIs(
	router *chi.Mux,
	cfg RouterConfig,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) {
	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(cfg.Checks, tracer, monitor, logger).RegisterEndpoints(router)
	login.NewAPI(cfg.Authenticator, cfg.Identities, cfg.Flows, tracer, logger).RegisterEndpoints(router)
}

func NewRouter(
	cfg RouterConfig,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	router.Use(monitoring.NewMiddleware(monitor, logger).ResponseTime())
	router.Use(interceptors(cfg)...)

	registerAPIs(router, cfg, tracer, monitor, logger)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}

// NewGinRouter serves the same routes as NewRouter with gin running the
// interceptor chain, response times are still taken per chi route
func NewGinRouter(
	cfg RouterConfig,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())

	for _, interceptor := range interceptors(cfg) {
		engine.Use(authentication.ToGin(interceptor))
	}

	apis := chi.NewMux()
	apis.Use(monitoring.NewMiddleware(monitor, logger).ResponseTime())

	registerAPIs(apis, cfg, tracer, monitor, logger)

	// gin presets 404 on unrouted requests, chi decides the status here
	engine.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusOK)
		apis.ServeHTTP(c.Writer, c.Request)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(engine)
}

// NewHandler picks the router for framework, chi when unset
func NewHandler(
	framework string,
	cfg RouterConfig,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	if framework == FrameworkGin {
		gin.SetMode(gin.ReleaseMode)
		return NewGinRouter(cfg, tracer, monitor, logger)
	}

	return NewRouter(cfg, tracer, monitor, logger)
}
