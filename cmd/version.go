// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/oauth2-login/internal/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get the application's version",
	Long:  `Get the application's version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if format, _ := cmd.Flags().GetString("format"); format == "json" {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version.Version})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "App Version: %s\n", version.Version)
		return nil
	},
}

func init() {
	versionCmd.Flags().StringP("format", "f", "text", "Output format (text or json)")

	rootCmd.AddCommand(versionCmd)
}
