package repositories

import (
	"context"
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
)

// TransactionRepository is the append-oriented transaction store combined
// with the atomic balance-write unit the ledger engine requires.
//
// ApplyTransaction and ApplyTransfer persist the new account balance(s) and
// the COMPLETED transaction record(s) as one atomic unit: either everything
// is durably committed or nothing is. The Version carried on each account is
// the version observed when the new balance was computed; implementations
// must reject the write with apperrors.ErrConflict when the stored version
// has moved on.
type TransactionRepository interface {
	ApplyTransaction(ctx context.Context, account domain.Account, txn domain.Transaction) error
	ApplyTransfer(ctx context.Context, from domain.Account, fromTxn domain.Transaction, to domain.Account, toTxn domain.Transaction) error

	FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)
	ListTransactionsByAccountAndRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error)
}
