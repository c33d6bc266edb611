package services

import (
	"context"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the ledger engine: it is the only component allowed to
// mutate account balances, and every mutation also records an immutable
// COMPLETED transaction. The acting customer is always an explicit argument;
// the engine never reads ambient identity.
type LedgerSvcFacade interface {
	// Deposit credits the account and records a DEPOSIT transaction.
	Deposit(ctx context.Context, customerID, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error)

	// Withdraw debits the account and records a WITHDRAWAL transaction; the
	// caller must own the account and the balance must cover the amount.
	Withdraw(ctx context.Context, customerID, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error)

	// Transfer atomically debits the source and credits the destination,
	// recording one TRANSFER leg per account. Returns (debit leg, credit leg).
	Transfer(ctx context.Context, customerID, fromAccountNumber, toAccountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, *domain.Transaction, error)

	// GetBalance is read-only and has no side effect.
	GetBalance(ctx context.Context, customerID, accountNumber string) (decimal.Decimal, error)

	// ListTransactions returns the account's history, optionally bounded by a
	// time range.
	ListTransactions(ctx context.Context, customerID, accountNumber string, params dto.ListTransactionsParams) ([]domain.Transaction, error)

	// GetTransaction looks up a single ledger entry by its unique reference.
	GetTransaction(ctx context.Context, customerID, reference string) (*domain.Transaction, error)
}
