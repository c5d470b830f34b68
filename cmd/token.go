// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/tracing"
	"github.com/canonical/oauth2-login/pkg/authentication"
)

var (
	clientID     string
	clientSecret string
	tokenURL     string
	issuerURL    string
	verifyURL    string
	scopes       []string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Get an access token using Client Credentials flow",
	Long: `Get an access token using Client Credentials flow.

With --verify-url the token is resolved into the provider profile the
login gateway would see, useful to test bearer access to /api/v0/me.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		if tokenURL == "" {
			if issuerURL == "" {
				return fmt.Errorf("either --token-url or --issuer-url must be provided")
			}

			// Discovery endpoint
			provider, err := oidc.NewProvider(ctx, issuerURL)
			if err != nil {
				return fmt.Errorf("failed to create OIDC provider from issuer: %v", err)
			}
			tokenURL = provider.Endpoint().TokenURL
		}

		config := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       scopes,
		}

		token, err := config.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get token: %v", err)
		}

		if verifyURL == "" {
			fmt.Fprintln(cmd.OutOrStdout(), token.AccessToken)
			return nil
		}

		fetcher := authentication.NewOAuth2ProfileFetcher(verifyURL, nil, tracing.NewNoopTracer(), logging.NewNoopLogger())

		profile, err := fetcher.FetchProfile(ctx, token.AccessToken)
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %v", err)
		}

		out := json.NewEncoder(cmd.OutOrStdout())
		out.SetIndent("", "  ")

		return out.Encode(map[string]interface{}{
			"access_token": token.AccessToken,
			"profile":      profile,
		})
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&clientID, "client-id", "", "Client ID")
	tokenCmd.Flags().StringVar(&clientSecret, "client-secret", "", "Client Secret")
	tokenCmd.Flags().StringVar(&tokenURL, "token-url", "", "Token URL")
	tokenCmd.Flags().StringVar(&issuerURL, "issuer-url", "", "Issuer URL (for OIDC discovery)")
	tokenCmd.Flags().StringVar(&verifyURL, "verify-url", "", "Profile endpoint to resolve the token against")
	tokenCmd.Flags().StringSliceVar(&scopes, "scopes", []string{}, "Scopes (comma-separated)")

	_ = tokenCmd.MarkFlagRequired("client-id")
	_ = tokenCmd.MarkFlagRequired("client-secret")
}
