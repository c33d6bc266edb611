package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a bank account by product.
type AccountType string

const (
	Savings          AccountType = "SAVINGS"
	Current          AccountType = "CURRENT"
	FixedDeposit     AccountType = "FIXED_DEPOSIT"
	RecurringDeposit AccountType = "RECURRING_DEPOSIT"
)

// ValidAccountType reports whether t is one of the known account products.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Savings, Current, FixedDeposit, RecurringDeposit:
		return true
	}
	return false
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountInactive  AccountStatus = "INACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountClosed    AccountStatus = "CLOSED"
)

// Account represents a customer bank account within the core domain.
// Balance is owned by the ledger engine: it is the sum of all COMPLETED
// transaction effects recorded against the account and is never set directly
// by a caller.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary key (UUID)
	AccountNumber string          `json:"accountNumber"` // Unique 12-digit caller-facing number
	CustomerID    string          `json:"customerID"`    // Owning customer
	AccountType   AccountType     `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Status        AccountStatus   `json:"status"`
	Version       int64           `json:"-"` // Optimistic concurrency counter, bumped on every balance write
	AuditFields
}

// IsActive reports whether the account can take part in money movement.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}
