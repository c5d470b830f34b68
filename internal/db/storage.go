// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/monitoring"
	"github.com/canonical/oauth2-login/internal/tracing"
)

type txContextKey struct{}

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

type DBClient struct {
	// pool is the native PGX pool we hold to allow closing
	pool *pgxpool.Pool
	// db is the database/sql view over the pool, used for transactions
	db *sql.DB

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Statement provides a StatementBuilderType bound to the transaction carried
// by the context, or to the pool when there is none
func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	var runner sq.BaseRunner = d.db

	if tx := TxFromContext(ctx); tx != nil {
		runner = tx
	}

	return sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		RunWith(runner)
}

// ContextWithTx returns a new context with the transaction attached.
func ContextWithTx(ctx context.Context, tx TxInterface) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext extracts a transaction from the context, returning nil if none exists.
func TxFromContext(ctx context.Context) TxInterface {
	if tx, ok := ctx.Value(txContextKey{}).(TxInterface); ok {
		return tx
	}
	return nil
}

// WithTx runs fn inside a transaction, committing when fn succeeds.
// Nested calls reuse the outer transaction.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	ctx, span := d.tracer.Start(ctx, "db.DBClient.WithTx")
	defer span.End()

	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := d.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(ContextWithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			d.logger.Errorf("failed to rollback transaction: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Ping checks the database and reports its availability to the monitor
func (d *DBClient) Ping(ctx context.Context) error {
	ctx, span := d.tracer.Start(ctx, "db.DBClient.Ping")
	defer span.End()

	err := d.pool.Ping(ctx)

	available := 1.0
	if err != nil {
		available = 0
	}

	if mErr := d.monitor.SetDependencyAvailability(map[string]string{"component": "database"}, available); mErr != nil {
		d.logger.Debugf("failed to set database availability: %v", mErr)
	}

	return err
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

// NewDBClient creates a new DBClient instance with the provided DSN and configuration options.
func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("DSN validation failed: %v", err)
	}

	if cfg.TracingEnabled {
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	config.MaxConns = cfg.MaxConns
	config.MinConns = cfg.MinConns
	config.MaxConnLifetime = cfg.MaxConnLifetime
	config.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	config.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %v", err)
	}

	if cfg.TracingEnabled {
		if err := otelpgx.RecordStats(pool); err != nil {
			return nil, fmt.Errorf("failed to start metrics collection for database: %v", err)
		}
	}

	d := new(DBClient)
	d.pool = pool
	d.db = stdlib.OpenDBFromPool(pool)

	d.tracer = tracer
	d.monitor = monitor
	d.logger = logger

	if err := d.Ping(context.Background()); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to connect to the database: %v", err)
	}

	return d, nil
}
