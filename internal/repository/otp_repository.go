package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OTPRepository struct {
	db *pgxpool.Pool
}

func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) Create(ctx context.Context, code string, ttl time.Duration) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO otp_codes (code, expired_at) VALUES ($1, CURRENT_TIMESTAMP + $2::interval)",
		code, ttl.String())
	return err
}

func (r *OTPRepository) IsUsable(ctx context.Context, code string) (bool, error) {
	var usable bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM otp_codes
		  WHERE code = $1 AND is_active = true AND expired_at >= CURRENT_TIMESTAMP)`,
		code).Scan(&usable)
	if err != nil {
		return false, err
	}
	return usable, nil
}

// Consume deactivates the code in one statement so a code can never be spent
// twice, even by concurrent requests.
func (r *OTPRepository) Consume(ctx context.Context, code string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE otp_codes SET is_active = false
		  WHERE code = $1 AND is_active = true AND expired_at >= CURRENT_TIMESTAMP`,
		code)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
