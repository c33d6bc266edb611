package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/Manav-gyani/Bank-Management-System/internal/middleware"
	"github.com/Manav-gyani/Bank-Management-System/internal/utils/idgen"
	"github.com/Manav-gyani/Bank-Management-System/internal/utils/locking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxApplyAttempts bounds the optimistic retry loop around the atomic
// balance-write unit. The per-account lock serializes operations within this
// process; the version check catches writers outside it.
const maxApplyAttempts = 3

// ledgerService is the ledger engine. Every balance mutation runs as one
// serialized read-modify-write-append unit per account: the engine holds the
// account's lock for the duration, and the repository commits the new
// balance and the COMPLETED transaction atomically.
type ledgerService struct {
	accountRepo portsrepo.AccountRepository
	txnRepo     portsrepo.TransactionRepository
	locks       *locking.KeyedMutex
}

// NewLedgerService creates the ledger engine.
func NewLedgerService(accountRepo portsrepo.AccountRepository, txnRepo portsrepo.TransactionRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		locks:       locking.NewKeyedMutex(),
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	return nil
}

func newCompletedTransaction(accountID string, txnType domain.TransactionType, amount, balanceAfter decimal.Decimal, description string) (domain.Transaction, error) {
	reference, err := idgen.NewTransactionReference()
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: failed to generate transaction reference: %v", apperrors.ErrInternal, err)
	}
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Reference:     reference,
		AccountID:     accountID,
		Type:          txnType,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
		Description:   description,
		Status:        domain.TxnCompleted,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// Deposit credits the account and records a COMPLETED DEPOSIT transaction.
// Deposits and withdrawals do not require the account to be ACTIVE; only
// Transfer gates on account status.
func (s *ledgerService) Deposit(ctx context.Context, customerID, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", accountNumber, err)
	}

	s.locks.Lock(account.AccountID)
	defer s.locks.Unlock(account.AccountID)

	var txn *domain.Transaction
	err = s.applyWithRetry(ctx, account.AccountID, func(fresh *domain.Account) error {
		fresh.Balance = fresh.Balance.Add(amount)
		t, err := newCompletedTransaction(fresh.AccountID, domain.Deposit, amount, fresh.Balance, description)
		if err != nil {
			return err
		}
		if err := s.txnRepo.ApplyTransaction(ctx, *fresh, t); err != nil {
			return err
		}
		txn = &t
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Deposit completed",
		slog.String("account_number", accountNumber),
		slog.String("reference", txn.Reference),
		slog.String("amount", amount.String()))
	return txn, nil
}

// Withdraw debits the account and records a COMPLETED WITHDRAWAL
// transaction. The balance check happens inside the serialized unit, so two
// concurrent withdrawals can never both spend the same funds.
func (s *ledgerService) Withdraw(ctx context.Context, customerID, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", accountNumber, err)
	}
	if customerID != "" && account.CustomerID != customerID {
		return nil, fmt.Errorf("%w: account %s is not held by the caller", apperrors.ErrForbidden, accountNumber)
	}

	s.locks.Lock(account.AccountID)
	defer s.locks.Unlock(account.AccountID)

	var txn *domain.Transaction
	err = s.applyWithRetry(ctx, account.AccountID, func(fresh *domain.Account) error {
		if fresh.Balance.LessThan(amount) {
			return fmt.Errorf("%w: account %s has %s, requested %s", apperrors.ErrInsufficientBalance, accountNumber, fresh.Balance, amount)
		}
		fresh.Balance = fresh.Balance.Sub(amount)
		t, err := newCompletedTransaction(fresh.AccountID, domain.Withdrawal, amount, fresh.Balance, description)
		if err != nil {
			return err
		}
		if err := s.txnRepo.ApplyTransaction(ctx, *fresh, t); err != nil {
			return err
		}
		txn = &t
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Withdrawal completed",
		slog.String("account_number", accountNumber),
		slog.String("reference", txn.Reference),
		slog.String("amount", amount.String()))
	return txn, nil
}

// Transfer atomically moves amount between two accounts, producing one
// TRANSFER leg per account. Both accounts are locked in lexicographic order
// of account ID so two opposite-direction transfers cannot deadlock. On any
// failure nothing is committed.
func (s *ledgerService) Transfer(ctx context.Context, customerID, fromAccountNumber, toAccountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, *domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(amount); err != nil {
		return nil, nil, err
	}
	if fromAccountNumber == toAccountNumber {
		return nil, nil, fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}

	from, err := s.accountRepo.FindAccountByNumber(ctx, fromAccountNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("source account %s: %w", fromAccountNumber, err)
	}
	to, err := s.accountRepo.FindAccountByNumber(ctx, toAccountNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("destination account %s: %w", toAccountNumber, err)
	}
	if customerID != "" && from.CustomerID != customerID {
		return nil, nil, fmt.Errorf("%w: account %s is not held by the caller", apperrors.ErrForbidden, fromAccountNumber)
	}

	unlock := s.locks.LockAll(from.AccountID, to.AccountID)
	defer unlock()

	var debit, credit *domain.Transaction
	for attempt := 1; attempt <= maxApplyAttempts; attempt++ {
		freshFrom, err := s.accountRepo.FindAccountByID(ctx, from.AccountID)
		if err != nil {
			return nil, nil, fmt.Errorf("source account %s: %w", fromAccountNumber, err)
		}
		freshTo, err := s.accountRepo.FindAccountByID(ctx, to.AccountID)
		if err != nil {
			return nil, nil, fmt.Errorf("destination account %s: %w", toAccountNumber, err)
		}

		if !freshFrom.IsActive() {
			return nil, nil, fmt.Errorf("%w: source account %s is %s", apperrors.ErrAccountNotActive, fromAccountNumber, freshFrom.Status)
		}
		if !freshTo.IsActive() {
			return nil, nil, fmt.Errorf("%w: destination account %s is %s", apperrors.ErrAccountNotActive, toAccountNumber, freshTo.Status)
		}
		if freshFrom.Balance.LessThan(amount) {
			return nil, nil, fmt.Errorf("%w: account %s has %s, requested %s", apperrors.ErrInsufficientBalance, fromAccountNumber, freshFrom.Balance, amount)
		}

		freshFrom.Balance = freshFrom.Balance.Sub(amount)
		freshTo.Balance = freshTo.Balance.Add(amount)

		debitDescription := description
		creditDescription := description
		if debitDescription == "" {
			debitDescription = "Transfer to " + toAccountNumber
			creditDescription = "Received from " + fromAccountNumber
		}

		debitTxn, err := newCompletedTransaction(freshFrom.AccountID, domain.Transfer, amount, freshFrom.Balance, debitDescription)
		if err != nil {
			return nil, nil, err
		}
		creditTxn, err := newCompletedTransaction(freshTo.AccountID, domain.Transfer, amount, freshTo.Balance, creditDescription)
		if err != nil {
			return nil, nil, err
		}
		debitTxn.FromAccount = fromAccountNumber
		debitTxn.ToAccount = toAccountNumber
		creditTxn.FromAccount = fromAccountNumber
		creditTxn.ToAccount = toAccountNumber

		err = s.txnRepo.ApplyTransfer(ctx, *freshFrom, debitTxn, *freshTo, creditTxn)
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Transfer hit a version conflict, retrying", slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		debit, credit = &debitTxn, &creditTxn
		break
	}
	if debit == nil {
		return nil, nil, fmt.Errorf("%w: transfer from %s to %s", apperrors.ErrConflict, fromAccountNumber, toAccountNumber)
	}

	logger.Info("Transfer completed",
		slog.String("from_account", fromAccountNumber),
		slog.String("to_account", toAccountNumber),
		slog.String("amount", amount.String()))
	return debit, credit, nil
}

// GetBalance returns the account's balance. Read-only, no side effect.
func (s *ledgerService) GetBalance(ctx context.Context, customerID, accountNumber string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account %s: %w", accountNumber, err)
	}
	if customerID != "" && account.CustomerID != customerID {
		return decimal.Zero, fmt.Errorf("%w: account %s is not held by the caller", apperrors.ErrForbidden, accountNumber)
	}
	return account.Balance, nil
}

// ListTransactions returns the account's history, optionally bounded by a
// time range.
func (s *ledgerService) ListTransactions(ctx context.Context, customerID, accountNumber string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", accountNumber, err)
	}
	if customerID != "" && account.CustomerID != customerID {
		return nil, fmt.Errorf("%w: account %s is not held by the caller", apperrors.ErrForbidden, accountNumber)
	}

	if params.From != nil && params.To != nil {
		return s.txnRepo.ListTransactionsByAccountAndRange(ctx, account.AccountID, *params.From, *params.To)
	}
	return s.txnRepo.ListTransactionsByAccount(ctx, account.AccountID)
}

// GetTransaction looks up a ledger entry by its unique reference. The entry's
// owning account must belong to the caller.
func (s *ledgerService) GetTransaction(ctx context.Context, customerID, reference string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", reference, err)
	}
	if customerID != "" {
		account, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", reference, err)
		}
		if account.CustomerID != customerID {
			return nil, fmt.Errorf("%w: transaction %s is not held by the caller", apperrors.ErrForbidden, reference)
		}
	}
	return txn, nil
}

// applyWithRetry re-reads the account and runs the mutation until the
// repository accepts the versioned write or the retry budget runs out.
func (s *ledgerService) applyWithRetry(ctx context.Context, accountID string, mutate func(fresh *domain.Account) error) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	for attempt := 1; attempt <= maxApplyAttempts; attempt++ {
		fresh, err := s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		err = mutate(fresh)
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Balance write hit a version conflict, retrying",
				slog.String("account_id", accountID), slog.Int("attempt", attempt))
			continue
		}
		return err
	}
	return fmt.Errorf("%w: account %s", apperrors.ErrConflict, accountID)
}
