package pgsql

import (
	"context"
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

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		AccountNumber: d.AccountNumber,
		CustomerID:    d.CustomerID,
		AccountType:   string(d.AccountType),
		Balance:       d.Balance,
		Currency:      d.Currency,
		Status:        string(d.Status),
		Version:       d.Version,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		AccountNumber: m.AccountNumber,
		CustomerID:    m.CustomerID,
		AccountType:   domain.AccountType(m.AccountType),
		Balance:       m.Balance,
		Currency:      m.Currency,
		Status:        domain.AccountStatus(m.Status),
		Version:       m.Version,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

const accountColumns = `account_id, account_number, customer_id, account_type, balance, currency, status, version, created_at, updated_at`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.CustomerID,
		&m.AccountType,
		&m.Balance,
		&m.Currency,
		&m.Status,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.AccountNumber,
		m.CustomerID,
		m.AccountType,
		m.Balance,
		m.Currency,
		m.Status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account number %s already exists: %w", m.AccountNumber, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID fetches a single account by its primary key.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// FindAccountByNumber fetches a single account by its caller-facing number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// ListAccountsByCustomer returns all accounts owned by one customer.
func (r *PgxAccountRepository) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 ORDER BY created_at;`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		out = append(out, toDomainAccount(m))
	}
	return out, rows.Err()
}

// UpdateAccountStatus changes an account's lifecycle status. Balance and
// version are untouched.
func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, now time.Time) error {
	query := `UPDATE accounts SET status = $2, updated_at = $3 WHERE account_id = $1;`

	tag, err := r.pool.Exec(ctx, query, accountID, string(status), now)
	if err != nil {
		return fmt.Errorf("failed to update status of account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
