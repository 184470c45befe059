package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"project_karcis/internal/config"
)

type PostgresClient struct {
	Pool *pgxpool.Pool
}

func NewPostgresClient(ctx context.Context, cfg *config.Config) (*PostgresClient, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	// Pool configuration
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	client := &PostgresClient{Pool: pool}

	if err := client.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return client, nil
}

func (p *PostgresClient) Migrate(ctx context.Context) error {
	// Users Table. Uniqueness only applies among non-deleted rows, hence the
	// partial indexes instead of column constraints.
	_, err := p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			username VARCHAR(50) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			title VARCHAR(50) NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			phone VARCHAR(20) NOT NULL DEFAULT '',
			role_id INT NOT NULL DEFAULT 2,
			deleted_at TIMESTAMPTZ
		);
	`)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	_, err = p.Pool.Exec(ctx, `
		CREATE UNIQUE INDEX IF NOT EXISTS users_username_active
			ON users (username) WHERE deleted_at IS NULL;
	`)
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	_, err = p.Pool.Exec(ctx, `
		CREATE UNIQUE INDEX IF NOT EXISTS users_email_active
			ON users (email) WHERE deleted_at IS NULL;
	`)
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}

	// Tokens Table: one row per issued token, flipped on logout
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tokens (
			id BIGSERIAL PRIMARY KEY,
			token TEXT UNIQUE NOT NULL,
			is_revoked BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create tokens table: %w", err)
	}

	// OTP Codes Table
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS otp_codes (
			id BIGSERIAL PRIMARY KEY,
			code VARCHAR(6) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			expired_at TIMESTAMPTZ NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("create otp_codes table: %w", err)
	}

	// Balances Table
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS balances (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
			balance NUMERIC(15, 2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create balances table: %w", err)
	}

	// Balance Histories Table (append-only)
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS balance_histories (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			balance_id BIGINT NOT NULL REFERENCES balances(id),
			balance NUMERIC(15, 2) NOT NULL,
			top_up NUMERIC(15, 2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create balance_histories table: %w", err)
	}

	// Amenities Table
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS amenities (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			icon TEXT
		);
	`)
	if err != nil {
		return fmt.Errorf("create amenities table: %w", err)
	}

	return nil
}

func (p *PostgresClient) Close() {
	p.Pool.Close()
}
