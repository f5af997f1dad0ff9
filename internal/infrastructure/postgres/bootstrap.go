package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

// The serverless deployment has no startup phase that guarantees schema
// creation, so every cold invocation may hit a database without tables or a
// transient connection failure. The guard below wraps each database call with
// create-if-missing bootstrap and exponential-backoff retry. The DDL is
// idempotent: two cold starts racing on table creation are both safe.

const (
	retryBase   = 200 * time.Millisecond
	retryMaxTry = 3
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		bookmark_limit INTEGER NOT NULL DEFAULT 99,
		disabled BOOLEAN NOT NULL DEFAULT FALSE,
		site_name VARCHAR(100) NOT NULL DEFAULT 'My Navigation',
		site_desc TEXT NOT NULL DEFAULT 'Personal bookmark collection',
		bg_mode VARCHAR(20) NOT NULL DEFAULT 'gradient',
		bg_color VARCHAR(20) NOT NULL DEFAULT '#667eea',
		bg_image TEXT,
		enable_particles BOOLEAN NOT NULL DEFAULT FALSE,
		particle_style VARCHAR(20) NOT NULL DEFAULT 'stars',
		particle_color VARCHAR(20) NOT NULL DEFAULT '#ffffff',
		card_color VARCHAR(20) NOT NULL DEFAULT '#ffffff',
		card_opacity INTEGER NOT NULL DEFAULT 85,
		card_text_color VARCHAR(20) NOT NULL DEFAULT '#333333',
		enable_minimal_mode BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(50) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS bookmarks (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		url TEXT NOT NULL,
		description TEXT,
		icon VARCHAR(10) NOT NULL DEFAULT '🔗',
		category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		is_public BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookmarks_user_id ON bookmarks (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_user_id ON categories (user_id)`,
}

// WithRetry invokes op up to 3 times with exponential backoff (200ms, 400ms)
// and propagates the last error.
func WithRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(retryMaxTry-1, retry.NewExponential(retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := op(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

// Bootstrap creates missing tables non-destructively.
type Bootstrap struct {
	db     DB
	logger *logrus.Logger
}

func NewBootstrap(db DB, logger *logrus.Logger) *Bootstrap {
	return &Bootstrap{db: db, logger: logger}
}

// EnsureTables runs the idempotent DDL for every required table.
func (b *Bootstrap) EnsureTables(ctx context.Context) error {
	for _, stmt := range ddl {
		if _, err := b.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	if b.logger != nil {
		b.logger.Debug("database schema verified")
	}
	return nil
}

// Guard is a DB that retries transient failures and recreates missing tables
// once when an operation fails with undefined_table, before retrying the
// operation itself.
type Guard struct {
	db   DB
	boot *Bootstrap
}

func NewGuard(db DB, boot *Bootstrap) *Guard {
	return &Guard{db: db, boot: boot}
}

func (g *Guard) run(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(retryMaxTry-1, retry.NewExponential(retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err != nil && isUndefinedTable(err) {
			if cerr := g.boot.EnsureTables(ctx); cerr != nil {
				return retry.RetryableError(cerr)
			}
			err = op(ctx)
		}
		if err == nil {
			return nil
		}
		// A no-rows result is definitive, not transient.
		if errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		return retry.RetryableError(err)
	})
}

func (g *Guard) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	var tag pgconn.CommandTag
	err := g.run(ctx, func(ctx context.Context) error {
		var err error
		tag, err = g.db.Exec(ctx, sql, args...)
		return err
	})
	return tag, err
}

func (g *Guard) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	var rows pgx.Rows
	err := g.run(ctx, func(ctx context.Context) error {
		var err error
		rows, err = g.db.Query(ctx, sql, args...)
		return err
	})
	return rows, err
}

// QueryRow defers execution to Scan, where pgx surfaces errors, so the guard
// wraps the whole issue-and-scan round trip.
func (g *Guard) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &guardedRow{guard: g, ctx: ctx, sql: sql, args: args}
}

type guardedRow struct {
	guard *Guard
	ctx   context.Context
	sql   string
	args  []any
}

func (r *guardedRow) Scan(dest ...any) error {
	return r.guard.run(r.ctx, func(ctx context.Context) error {
		return r.guard.db.QueryRow(ctx, r.sql, r.args...).Scan(dest...)
	})
}

// Begin hands out a plain transaction; EnsureTables has already run by the
// time a transactional path executes on a cold start.
func (g *Guard) Begin(ctx context.Context) (pgx.Tx, error) {
	return g.db.Begin(ctx)
}

var _ DB = (*Guard)(nil)
