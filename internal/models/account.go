package models

import (
	"github.com/shopspring/decimal"
)

// Account is the persisted shape of a bank account.
type Account struct {
	AccountID     string          `db:"account_id"`
	AccountNumber string          `db:"account_number"`
	CustomerID    string          `db:"customer_id"`
	AccountType   string          `db:"account_type"`
	Balance       decimal.Decimal `db:"balance"`
	Currency      string          `db:"currency"`
	Status        string          `db:"status"`
	Version       int64           `db:"version"` // Optimistic concurrency counter
	AuditFields
}
