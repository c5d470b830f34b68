// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/canonical/oauth2-login/migrations"
)

type migration func(ctx context.Context, provider *goose.Provider, args []string) (interface{}, error)

// migrateCmd applies the embedded schema, "migrate" alone is "migrate up"
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Args:  cobra.NoArgs,
	RunE:  withMigrations(up),
}

func init() {
	migrateCmd.PersistentFlags().String("dsn", "", "PostgreSQL DSN connection string, defaults to $DSN")
	migrateCmd.PersistentFlags().StringP("format", "f", "text", "Output format (text or json)")

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE:  withMigrations(up),
		},
		&cobra.Command{
			Use:   "down [version]",
			Short: "Roll back the last migration, or every migration above version",
			Args:  cobra.MaximumNArgs(1),
			RunE:  withMigrations(down),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and when they were applied",
			Args:  cobra.NoArgs,
			RunE:  withMigrations(status),
		},
	)

	rootCmd.AddCommand(migrateCmd)
}

func up(ctx context.Context, provider *goose.Provider, _ []string) (interface{}, error) {
	results, err := provider.Up(ctx)
	if results == nil {
		results = []*goose.MigrationResult{}
	}

	return results, err
}

func down(ctx context.Context, provider *goose.Provider, args []string) (interface{}, error) {
	if len(args) == 0 {
		result, err := provider.Down(ctx)
		if err != nil {
			return nil, err
		}
		return []*goose.MigrationResult{result}, nil
	}

	version, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || version < 0 {
		return nil, fmt.Errorf("invalid version number: %q", args[0])
	}

	return provider.DownTo(ctx, version)
}

func status(ctx context.Context, provider *goose.Provider, _ []string) (interface{}, error) {
	return provider.Status(ctx)
}

// withMigrations opens the database from --dsn and runs m against the
// embedded migrations, printing what it returns
func withMigrations(m migration) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		dsn, _ := cmd.Flags().GetString("dsn")
		if dsn == "" {
			dsn = os.Getenv("DSN")
		}
		if dsn == "" {
			return fmt.Errorf("a DSN is required, use --dsn or set DSN")
		}

		format, _ := cmd.Flags().GetString("format")

		config, err := pgx.ParseConfig(dsn)
		if err != nil {
			return fmt.Errorf("DSN validation failed: %v", err)
		}

		db := stdlib.OpenDB(*config)
		defer db.Close()

		provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations, goose.WithLogger(goose.NopLogger()))
		if err != nil {
			return fmt.Errorf("failed to create goose provider: %w", err)
		}

		result, err := m(cmd.Context(), provider, args)
		if err != nil {
			return err
		}

		return printMigrations(cmd.OutOrStdout(), format, result)
	}
}

type migrationRow struct {
	Version   int64      `json:"version"`
	Path      string     `json:"path"`
	Direction string     `json:"direction,omitempty"`
	Duration  string     `json:"duration,omitempty"`
	Empty     bool       `json:"empty,omitempty"`
	State     string     `json:"state,omitempty"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}

func printMigrations(out io.Writer, format string, result interface{}) error {
	if format == "json" {
		return json.NewEncoder(out).Encode(migrationRows(result))
	}

	switch r := result.(type) {
	case []*goose.MigrationResult:
		if len(r) == 0 {
			fmt.Fprintln(out, "Database is up to date")
		}
		for _, m := range r {
			fmt.Fprintln(out, m)
		}
	case []*goose.MigrationStatus:
		for _, s := range r {
			appliedAt := "Pending"
			if s.State == goose.StateApplied {
				appliedAt = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(out, "%-24s %s\n", appliedAt, s.Source.Path)
		}
	}

	return nil
}

func migrationRows(result interface{}) []migrationRow {
	rows := []migrationRow{}

	switch r := result.(type) {
	case []*goose.MigrationResult:
		for _, m := range r {
			rows = append(rows, migrationRow{
				Version:   m.Source.Version,
				Path:      m.Source.Path,
				Direction: m.Direction,
				Duration:  m.Duration.String(),
				Empty:     m.Empty,
			})
		}
	case []*goose.MigrationStatus:
		for _, s := range r {
			row := migrationRow{Version: s.Source.Version, Path: s.Source.Path, State: string(s.State)}
			if s.State == goose.StateApplied {
				at := s.AppliedAt
				row.AppliedAt = &at
			}
			rows = append(rows, row)
		}
	}

	return rows
}
