package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Transfer   TransactionType = "TRANSFER"
	Payment    TransactionType = "PAYMENT"
	Interest   TransactionType = "INTEREST"
)

// TransactionStatus is the lifecycle state of a ledger entry. Once COMPLETED,
// amount, balanceAfter and accountID are immutable historical facts.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "PENDING"
	TxnCompleted TransactionStatus = "COMPLETED"
	TxnFailed    TransactionStatus = "FAILED"
	TxnReversed  TransactionStatus = "REVERSED"
)

// Transaction is one completed money movement recorded against an account.
// A transfer produces exactly two Transaction records, one per leg, sharing
// the same amount and correlated by FromAccount/ToAccount.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary key (UUID)
	Reference     string            `json:"reference"`     // Unique generated reference, never reused
	AccountID     string            `json:"accountID"`     // Owning account
	Type          TransactionType   `json:"type"`
	FromAccount   string            `json:"fromAccount,omitempty"` // Counterparty account number, TRANSFER only
	ToAccount     string            `json:"toAccount,omitempty"`   // Counterparty account number, TRANSFER only
	Amount        decimal.Decimal   `json:"amount"`                // Positive
	BalanceAfter  decimal.Decimal   `json:"balanceAfter"`          // Owning account balance right after this entry
	Description   string            `json:"description"`
	Status        TransactionStatus `json:"status"`
	Timestamp     time.Time         `json:"timestamp"`
}

// SignedAmount returns the effect of this entry on the owning account's
// balance: deposits and transfer-in positive, withdrawals and transfer-out
// negative.
func (t Transaction) SignedAmount(ownAccountNumber string) decimal.Decimal {
	switch t.Type {
	case Deposit, Interest:
		return t.Amount
	case Withdrawal, Payment:
		return t.Amount.Neg()
	case Transfer:
		if t.ToAccount == ownAccountNumber {
			return t.Amount
		}
		return t.Amount.Neg()
	}
	return decimal.Zero
}
