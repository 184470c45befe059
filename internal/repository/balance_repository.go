package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"project_karcis/internal/entities"
)

const balanceColumns = `id, user_id, balance, created_at, updated_at`

type BalanceRepository struct {
	db *pgxpool.Pool
}

func NewBalanceRepository(db *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{db: db}
}

func scanBalance(row pgx.Row) (*entities.Balance, error) {
	var b entities.Balance
	err := row.Scan(&b.ID, &b.UserID, &b.Balance, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BalanceRepository) Get(ctx context.Context, id int64) (*entities.Balance, error) {
	return scanBalance(r.db.QueryRow(ctx,
		"SELECT "+balanceColumns+" FROM balances WHERE id = $1", id))
}

func (r *BalanceRepository) GetByUser(ctx context.Context, userID int64) (*entities.Balance, error) {
	return scanBalance(r.db.QueryRow(ctx,
		"SELECT "+balanceColumns+" FROM balances WHERE user_id = $1", userID))
}

func (r *BalanceRepository) Histories(ctx context.Context, userID int64) ([]entities.BalanceHistory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, balance_id, balance, top_up, created_at
		 FROM balance_histories WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories := []entities.BalanceHistory{}
	for rows.Next() {
		var h entities.BalanceHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.BalanceID, &h.Balance, &h.TopUp, &h.CreatedAt); err != nil {
			return nil, err
		}
		histories = append(histories, h)
	}
	return histories, rows.Err()
}

// Update sets the new amount and appends the history row in one transaction.
// The row is locked so the top_up delta is computed against a stable value.
func (r *BalanceRepository) Update(ctx context.Context, id int64, amount decimal.Decimal) (*entities.Balance, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	old, err := scanBalance(tx.QueryRow(ctx,
		"SELECT "+balanceColumns+" FROM balances WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		return nil, err
	}

	topUp := entities.TopUpDelta(old.Balance, amount)

	updated, err := scanBalance(tx.QueryRow(ctx,
		`UPDATE balances SET balance = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 RETURNING `+balanceColumns,
		amount, id))
	if err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO balance_histories (user_id, balance_id, balance, top_up)
		 VALUES ($1, $2, $3, $4)`,
		old.UserID, old.ID, amount, topUp); err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return updated, nil
}
