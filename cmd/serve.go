// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/oauth2-login/internal/config"
	"github.com/canonical/oauth2-login/internal/db"
	"github.com/canonical/oauth2-login/internal/kratos"
	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/monitoring"
	"github.com/canonical/oauth2-login/internal/monitoring/prometheus"
	"github.com/canonical/oauth2-login/internal/session"
	"github.com/canonical/oauth2-login/internal/storage"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/pkg/authentication"
	"github.com/canonical/oauth2-login/pkg/login"
	pkgstatus "github.com/canonical/oauth2-login/pkg/status"
	"github.com/canonical/oauth2-login/pkg/users"
	"github.com/canonical/oauth2-login/pkg/web"
)

const serviceName = "oauth2-login"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor(serviceName, logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.Debug, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))
	httpClient := tracing.NewHTTPClient()

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()

	checks := map[string]pkgstatus.Checker{"database": dbClient.Ping}

	store, err := sessionStore(specs, checks, tracer, monitor, logger)
	if err != nil {
		return err
	}

	kratosClient := kratos.NewClient(specs.KratosAdminURL, httpClient, tracer, monitor, logger)
	userService := users.NewService(
		storage.NewStorage(dbClient, tracer, monitor, logger),
		kratosClient,
		tracer,
		monitor,
		logger,
	)

	authenticator := authentication.NewAuthenticator(
		session.NewManager(store, tracer, logger),
		userService,
		tracer,
		monitor,
		logger,
	)

	flows, err := registerStrategies(context.Background(), specs, authenticator, userService, httpClient, tracer, logger)
	if err != nil {
		return err
	}

	router := web.NewHandler(
		specs.Router,
		web.RouterConfig{
			Authenticator: authenticator,
			Identities:    userService,
			Flows:         flows,
			Checks:        checks,
		},
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func sessionStore(
	specs *config.EnvSpec,
	checks map[string]pkgstatus.Checker,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (sessions.Store, error) {
	opts := session.Options(specs.BaseURL, specs.SessionMaxAge)

	switch specs.SessionStore {
	case "cookie":
		return session.NewCookieStore(specs.SessionSecret, opts), nil
	case "redis":
		client := session.NewRedisClient(specs.RedisAddr, specs.RedisPassword, specs.RedisDB)
		checks["redis"] = func(ctx context.Context) error {
			err := client.Ping(ctx).Err()

			available := 1.0
			if err != nil {
				available = 0
			}
			if mErr := monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, available); mErr != nil {
				logger.Debugf("failed to set redis availability: %v", mErr)
			}

			return err
		}

		logger.Info("Using redis session store")
		return session.NewRedisStore(client, specs.SessionSecret, opts, tracer, logger), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", specs.SessionStore)
	}
}

// registerStrategies enables every strategy whose client ID is configured
// and returns the login flows to mount
func registerStrategies(
	ctx context.Context,
	specs *config.EnvSpec,
	authenticator *authentication.Authenticator,
	userService authentication.UserIdentityService,
	httpClient *http.Client,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) ([]login.StrategyMiddlewareInterface, error) {
	flows := make([]login.StrategyMiddlewareInterface, 0)

	callbackURL := func(name string) string {
		return fmt.Sprintf("%s/auth/thirdparty/%s/callback", strings.TrimSuffix(specs.BaseURL, "/"), name)
	}

	opts := authentication.AuthenticateOptions{
		SuccessRedirect: login.SuccessRedirect,
		FailureRedirect: login.FailureRedirect,
	}

	if specs.OAuth2ClientID != "" {
		fetcher := authentication.NewOAuth2ProfileFetcher(specs.OAuth2VerifyURL, httpClient, tracer, logger)

		mw, err := authentication.NewOAuth2Middleware(
			authenticator,
			authentication.OAuth2Options{
				Name:         authentication.OAuth2StrategyName,
				ClientID:     specs.OAuth2ClientID,
				ClientSecret: specs.OAuth2ClientSecret,
				AuthURL:      specs.OAuth2AuthURL,
				TokenURL:     specs.OAuth2TokenURL,
				CallbackURL:  callbackURL(authentication.OAuth2StrategyName),
				Scopes:       specs.OAuth2Scopes,
			},
			fetcher.FetchProfile,
			userService,
			opts,
			httpClient,
			tracer,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to set up oauth2 strategy: %w", err)
		}
		flows = append(flows, mw)

		// API clients present tokens issued by the same provider
		authenticator.Use(authentication.NewBearerStrategy(fetcher.FetchProfile, authentication.NewVerifyFunc(userService), tracer, logger))
	}

	if specs.FacebookClientID != "" {
		mw, err := authentication.NewFacebookOAuth2Middleware(
			authenticator,
			authentication.FacebookOptions{
				ClientID:     specs.FacebookClientID,
				ClientSecret: specs.FacebookClientSecret,
				CallbackURL:  callbackURL(authentication.FacebookStrategyName),
			},
			userService,
			opts,
			httpClient,
			tracer,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to set up facebook strategy: %w", err)
		}
		flows = append(flows, mw)
	}

	if specs.OIDCClientID != "" {
		mw, err := authentication.NewOIDCMiddleware(
			ctx,
			authenticator,
			authentication.OIDCOptions{
				Issuer:       specs.OIDCIssuer,
				ClientID:     specs.OIDCClientID,
				ClientSecret: specs.OIDCClientSecret,
				CallbackURL:  callbackURL(authentication.OIDCStrategyName),
				Scopes:       specs.OIDCScopes,
			},
			userService,
			opts,
			httpClient,
			tracer,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to set up oidc strategy: %w", err)
		}
		flows = append(flows, mw)
	}

	if len(flows) == 0 {
		logger.Warn("No authentication strategy configured")
	} else {
		logger.Infof("Authentication strategies: %v", authenticator.Names())
	}

	return flows, nil
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
