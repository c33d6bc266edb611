package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted shape of one ledger entry. Rows are append
// only; completed entries are never updated.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	Reference     string          `db:"reference"`
	AccountID     string          `db:"account_id"`
	Type          string          `db:"type"`
	FromAccount   string          `db:"from_account"` // Nullable
	ToAccount     string          `db:"to_account"`   // Nullable
	Amount        decimal.Decimal `db:"amount"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Description   string          `db:"description"`
	Status        string          `db:"status"`
	Timestamp     time.Time       `db:"timestamp"`
}
