package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TokenRepository struct {
	db *pgxpool.Pool
}

func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, "INSERT INTO tokens (token) VALUES ($1)", token)
	return err
}

func (r *TokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	var revoked bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM tokens WHERE token = $1 AND is_revoked = true)",
		token).Scan(&revoked)
	if err != nil {
		return false, err
	}
	return revoked, nil
}

// Revoke flips is_revoked; the flag never reverts. Revoking an already
// revoked or unknown token is a no-op.
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE tokens SET is_revoked = true, updated_at = CURRENT_TIMESTAMP WHERE token = $1",
		token)
	return err
}
