package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	"github.com/Manav-gyani/Bank-Management-System/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBeneficiaryRepository struct {
	pool *pgxpool.Pool
}

// newPgxBeneficiaryRepository creates a new repository for saved payees.
func newPgxBeneficiaryRepository(pool *pgxpool.Pool) portsrepo.BeneficiaryRepository {
	return &PgxBeneficiaryRepository{pool: pool}
}

var _ portsrepo.BeneficiaryRepository = (*PgxBeneficiaryRepository)(nil)

func toDomainBeneficiary(m models.Beneficiary) domain.Beneficiary {
	return domain.Beneficiary{
		BeneficiaryID: m.BeneficiaryID,
		CustomerID:    m.CustomerID,
		Name:          m.Name,
		AccountNumber: m.AccountNumber,
		BankName:      m.BankName,
		IFSCCode:      m.IFSCCode,
		Nickname:      m.Nickname,
		Verified:      m.Verified,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

const beneficiaryColumns = `beneficiary_id, customer_id, name, account_number, bank_name, ifsc_code, nickname, verified, created_at, updated_at`

func scanBeneficiary(row pgx.Row) (models.Beneficiary, error) {
	var m models.Beneficiary
	err := row.Scan(
		&m.BeneficiaryID,
		&m.CustomerID,
		&m.Name,
		&m.AccountNumber,
		&m.BankName,
		&m.IFSCCode,
		&m.Nickname,
		&m.Verified,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveBeneficiary inserts a new saved payee. The (customer_id,
// account_number) unique constraint surfaces as ErrDuplicate.
func (r *PgxBeneficiaryRepository) SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	query := `
		INSERT INTO beneficiaries (` + beneficiaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		beneficiary.BeneficiaryID,
		beneficiary.CustomerID,
		beneficiary.Name,
		beneficiary.AccountNumber,
		beneficiary.BankName,
		beneficiary.IFSCCode,
		beneficiary.Nickname,
		beneficiary.Verified,
		beneficiary.CreatedAt,
		beneficiary.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("beneficiary account %s already saved: %w", beneficiary.AccountNumber, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save beneficiary %s: %w", beneficiary.BeneficiaryID, err)
	}
	return nil
}

// FindBeneficiaryByID fetches a single saved payee by its primary key.
func (r *PgxBeneficiaryRepository) FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE beneficiary_id = $1;`

	m, err := scanBeneficiary(r.pool.QueryRow(ctx, query, beneficiaryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find beneficiary %s: %w", beneficiaryID, err)
	}
	beneficiary := toDomainBeneficiary(m)
	return &beneficiary, nil
}

// ListBeneficiariesByCustomer returns all payees saved by one customer.
func (r *PgxBeneficiaryRepository) ListBeneficiariesByCustomer(ctx context.Context, customerID string) ([]domain.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE customer_id = $1 ORDER BY created_at;`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list beneficiaries for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	var out []domain.Beneficiary
	for rows.Next() {
		m, err := scanBeneficiary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary row: %w", err)
		}
		out = append(out, toDomainBeneficiary(m))
	}
	return out, rows.Err()
}

// UpdateBeneficiary writes the mutable fields only; owner and account
// details are immutable.
func (r *PgxBeneficiaryRepository) UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	query := `
		UPDATE beneficiaries
		SET name = $2, nickname = $3, verified = $4, updated_at = $5
		WHERE beneficiary_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		beneficiary.BeneficiaryID,
		beneficiary.Name,
		beneficiary.Nickname,
		beneficiary.Verified,
		beneficiary.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update beneficiary %s: %w", beneficiary.BeneficiaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBeneficiary removes a saved payee.
func (r *PgxBeneficiaryRepository) DeleteBeneficiary(ctx context.Context, beneficiaryID string) error {
	query := `DELETE FROM beneficiaries WHERE beneficiary_id = $1;`

	tag, err := r.pool.Exec(ctx, query, beneficiaryID)
	if err != nil {
		return fmt.Errorf("failed to delete beneficiary %s: %w", beneficiaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
