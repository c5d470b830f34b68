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
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/pkg/mockprovider"
)

var mockProviderCmd = &cobra.Command{
	Use:   "mock-provider",
	Short: "Run an in memory OAuth2 provider for local development",
	Long: `Run an in memory OAuth2 provider exposing /authorize, /token and /verify.

Every authorization is granted to the same configured user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		port, _ := flags.GetInt("port")
		logLevel, _ := flags.GetString("log-level")

		client := mockprovider.Client{}
		client.ID, _ = flags.GetString("client-id")
		client.Secret, _ = flags.GetString("client-secret")
		client.RedirectURL, _ = flags.GetString("redirect-url")

		user := mockprovider.User{}
		user.UserID, _ = flags.GetInt("user-id")
		user.Email, _ = flags.GetString("user-email")
		user.Name, _ = flags.GetString("user-name")

		return runMockProvider(port, client, user, logging.NewLogger(logLevel))
	},
}

func init() {
	mockProviderCmd.Flags().Int("port", 9000, "Port to listen on")
	mockProviderCmd.Flags().String("log-level", "info", "Log level")
	mockProviderCmd.Flags().String("client-id", "1111", "Accepted client ID")
	mockProviderCmd.Flags().String("client-secret", "app1_secret", "Accepted client secret")
	mockProviderCmd.Flags().String("redirect-url", "", "Only redirect URL accepted, any when empty")
	mockProviderCmd.Flags().Int("user-id", 9999, "ID of the signed in user")
	mockProviderCmd.Flags().String("user-email", "usr1@lb.com", "Email of the signed in user")
	mockProviderCmd.Flags().String("user-name", "usr1", "Name of the signed in user")

	rootCmd.AddCommand(mockProviderCmd)
}

func runMockProvider(port int, client mockprovider.Client, user mockprovider.User, logger *logging.Logger) error {
	defer logger.Sync()

	router := chi.NewMux()
	router.Use(middleware.RequestID, middleware.Recoverer)

	mockprovider.NewProvider(client, user, tracing.NewNoopTracer(), logger).RegisterEndpoints(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", port),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		Handler:      router,
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		logger.Infof("Starting mock OAuth2 provider on port %v", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("server error: %w", err)
	case <-c:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
