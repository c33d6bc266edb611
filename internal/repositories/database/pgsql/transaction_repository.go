package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	"github.com/Manav-gyani/Bank-Management-System/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Reference:     d.Reference,
		AccountID:     d.AccountID,
		Type:          string(d.Type),
		FromAccount:   d.FromAccount,
		ToAccount:     d.ToAccount,
		Amount:        d.Amount,
		BalanceAfter:  d.BalanceAfter,
		Description:   d.Description,
		Status:        string(d.Status),
		Timestamp:     d.Timestamp,
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Reference:     m.Reference,
		AccountID:     m.AccountID,
		Type:          domain.TransactionType(m.Type),
		FromAccount:   m.FromAccount,
		ToAccount:     m.ToAccount,
		Amount:        m.Amount,
		BalanceAfter:  m.BalanceAfter,
		Description:   m.Description,
		Status:        domain.TransactionStatus(m.Status),
		Timestamp:     m.Timestamp,
	}
}

const transactionColumns = `transaction_id, reference, account_id, type, from_account, to_account, amount, balance_after, description, status, timestamp`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var fromAccount, toAccount sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.Reference,
		&m.AccountID,
		&m.Type,
		&fromAccount,
		&toAccount,
		&m.Amount,
		&m.BalanceAfter,
		&m.Description,
		&m.Status,
		&m.Timestamp,
	)
	m.FromAccount = fromAccount.String
	m.ToAccount = toAccount.String
	return m, err
}

// updateBalanceTx writes the account's new balance inside tx, guarded by the
// version the caller observed. Zero rows affected means either the account is
// gone or another writer got there first.
func updateBalanceTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	query := `
		UPDATE accounts
		SET balance = $2, version = version + 1, updated_at = $3
		WHERE account_id = $1 AND version = $4;
	`
	tag, err := tx.Exec(ctx, query, account.AccountID, account.Balance, time.Now().UTC(), account.Version)
	if err != nil {
		return fmt.Errorf("failed to update balance of account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s version %d is stale: %w", account.AccountID, account.Version, apperrors.ErrConflict)
	}
	return nil
}

func insertTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := toModelTransaction(txn)

	var fromAccount, toAccount sql.NullString
	if m.FromAccount != "" {
		fromAccount = sql.NullString{String: m.FromAccount, Valid: true}
	}
	if m.ToAccount != "" {
		toAccount = sql.NullString{String: m.ToAccount, Valid: true}
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Reference,
		m.AccountID,
		m.Type,
		fromAccount,
		toAccount,
		m.Amount,
		m.BalanceAfter,
		m.Description,
		m.Status,
		m.Timestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transaction reference %s already exists: %w", m.Reference, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// ApplyTransaction persists the new balance and its ledger entry in one DB
// transaction.
func (r *PgxTransactionRepository) ApplyTransaction(ctx context.Context, account domain.Account, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	if err := updateBalanceTx(ctx, tx, account); err != nil {
		return err
	}
	if err := insertTransactionTx(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ApplyTransfer persists both new balances and both legs of a transfer in one
// DB transaction, so no partial transfer can ever become visible.
func (r *PgxTransactionRepository) ApplyTransfer(ctx context.Context, from domain.Account, fromTxn domain.Transaction, to domain.Account, toTxn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	if err := updateBalanceTx(ctx, tx, from); err != nil {
		return err
	}
	if err := updateBalanceTx(ctx, tx, to); err != nil {
		return err
	}
	if err := insertTransactionTx(ctx, tx, fromTxn); err != nil {
		return err
	}
	if err := insertTransactionTx(ctx, tx, toTxn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindTransactionByReference fetches a single ledger entry by its unique
// reference.
func (r *PgxTransactionRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", reference, err)
	}
	txn := toDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByAccount returns the full statement of one account in
// chronological order.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 ORDER BY timestamp;`
	return r.listTransactions(ctx, query, accountID)
}

// ListTransactionsByAccountAndRange returns the statement of one account
// bounded by an inclusive time window.
func (r *PgxTransactionRepository) ListTransactionsByAccountAndRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE account_id = $1 AND timestamp >= $2 AND timestamp <= $3
		ORDER BY timestamp;
	`
	return r.listTransactions(ctx, query, accountID, from, to)
}

func (r *PgxTransactionRepository) listTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		out = append(out, toDomainTransaction(m))
	}
	return out, rows.Err()
}
