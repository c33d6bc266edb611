package dto

import (
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest credits an account.
type DepositRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required,numeric,len=12"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description"`
}

// WithdrawRequest debits an account.
type WithdrawRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required,numeric,len=12"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description"`
}

// TransferRequest moves money between two accounts atomically.
type TransferRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber" binding:"required,numeric,len=12"`
	ToAccountNumber   string          `json:"toAccountNumber" binding:"required,numeric,len=12"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Description       string          `json:"description"`
}

// ListTransactionsParams filters a transaction history query.
type ListTransactionsParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// TransactionResponse is the caller-facing view of a ledger entry.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	Reference     string                   `json:"reference"`
	AccountID     string                   `json:"accountID"`
	Type          domain.TransactionType   `json:"type"`
	FromAccount   string                   `json:"fromAccount,omitempty"`
	ToAccount     string                   `json:"toAccount,omitempty"`
	Amount        decimal.Decimal          `json:"amount"`
	BalanceAfter  decimal.Decimal          `json:"balanceAfter"`
	Description   string                   `json:"description"`
	Status        domain.TransactionStatus `json:"status"`
	Timestamp     time.Time                `json:"timestamp"`
}

// TransferResponse carries the two legs of a completed transfer.
type TransferResponse struct {
	Debit  TransactionResponse `json:"debit"`
	Credit TransactionResponse `json:"credit"`
}

// ToTransactionResponse maps a domain transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Reference:     t.Reference,
		AccountID:     t.AccountID,
		Type:          t.Type,
		FromAccount:   t.FromAccount,
		ToAccount:     t.ToAccount,
		Amount:        t.Amount,
		BalanceAfter:  t.BalanceAfter,
		Description:   t.Description,
		Status:        t.Status,
		Timestamp:     t.Timestamp,
	}
}

// ToTransactionResponses maps a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
