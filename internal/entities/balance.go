package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Balance struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TopUpDelta returns the ledger delta for a balance change: the increase
// amount, or zero when the balance stayed flat or decreased.
func TopUpDelta(oldAmount, newAmount decimal.Decimal) decimal.Decimal {
	if newAmount.GreaterThan(oldAmount) {
		return newAmount.Sub(oldAmount)
	}
	return decimal.Zero
}

// BalanceHistory rows are append-only; they are never updated or deleted.
type BalanceHistory struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	BalanceID int64           `json:"balance_id"`
	Balance   decimal.Decimal `json:"balance"`
	TopUp     decimal.Decimal `json:"top_up"`
	CreatedAt time.Time       `json:"created_at"`
}
