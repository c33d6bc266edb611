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

type PgxLoanRepository struct {
	pool *pgxpool.Pool
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepository {
	return &PgxLoanRepository{pool: pool}
}

var _ portsrepo.LoanRepository = (*PgxLoanRepository)(nil)

func toModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:            d.LoanID,
		LoanNumber:        d.LoanNumber,
		CustomerID:        d.CustomerID,
		AccountID:         d.AccountID,
		LoanType:          string(d.LoanType),
		PrincipalAmount:   d.PrincipalAmount,
		InterestRate:      d.InterestRate,
		TenureMonths:      d.TenureMonths,
		MonthlyEMI:        d.MonthlyEMI,
		OutstandingAmount: d.OutstandingAmount,
		Status:            string(d.Status),
		CreditScore:       d.CreditScore,
		MonthlyIncome:     d.MonthlyIncome,
		ExistingDebt:      d.ExistingDebt,
		CollateralValue:   d.CollateralValue,
		DisbursementDate:  d.DisbursementDate,
		NextDueDate:       d.NextDueDate,
		ApprovalDate:      d.ApprovalDate,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func toDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:            m.LoanID,
		LoanNumber:        m.LoanNumber,
		CustomerID:        m.CustomerID,
		AccountID:         m.AccountID,
		LoanType:          domain.LoanType(m.LoanType),
		PrincipalAmount:   m.PrincipalAmount,
		InterestRate:      m.InterestRate,
		TenureMonths:      m.TenureMonths,
		MonthlyEMI:        m.MonthlyEMI,
		OutstandingAmount: m.OutstandingAmount,
		Status:            domain.LoanStatus(m.Status),
		CreditScore:       m.CreditScore,
		MonthlyIncome:     m.MonthlyIncome,
		ExistingDebt:      m.ExistingDebt,
		CollateralValue:   m.CollateralValue,
		DisbursementDate:  m.DisbursementDate,
		NextDueDate:       m.NextDueDate,
		ApprovalDate:      m.ApprovalDate,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

const loanColumns = `loan_id, loan_number, customer_id, account_id, loan_type, principal_amount, interest_rate, tenure_months, monthly_emi, outstanding_amount, status, credit_score, monthly_income, existing_debt, collateral_value, disbursement_date, next_due_date, approval_date, created_at, updated_at`

func scanLoan(row pgx.Row) (models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.LoanNumber,
		&m.CustomerID,
		&m.AccountID,
		&m.LoanType,
		&m.PrincipalAmount,
		&m.InterestRate,
		&m.TenureMonths,
		&m.MonthlyEMI,
		&m.OutstandingAmount,
		&m.Status,
		&m.CreditScore,
		&m.MonthlyIncome,
		&m.ExistingDebt,
		&m.CollateralValue,
		&m.DisbursementDate,
		&m.NextDueDate,
		&m.ApprovalDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveLoan inserts a new loan application.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := toModelLoan(loan)

	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.pool.Exec(ctx, query,
		m.LoanID,
		m.LoanNumber,
		m.CustomerID,
		m.AccountID,
		m.LoanType,
		m.PrincipalAmount,
		m.InterestRate,
		m.TenureMonths,
		m.MonthlyEMI,
		m.OutstandingAmount,
		m.Status,
		m.CreditScore,
		m.MonthlyIncome,
		m.ExistingDebt,
		m.CollateralValue,
		m.DisbursementDate,
		m.NextDueDate,
		m.ApprovalDate,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("loan number %s already exists: %w", m.LoanNumber, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save loan %s: %w", m.LoanID, err)
	}
	return nil
}

// FindLoanByID fetches a single loan by its primary key.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`
	return r.findOne(ctx, query, loanID)
}

// FindLoanByNumber fetches a single loan by its caller-facing number.
func (r *PgxLoanRepository) FindLoanByNumber(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_number = $1;`
	return r.findOne(ctx, query, loanNumber)
}

func (r *PgxLoanRepository) findOne(ctx context.Context, query string, arg any) (*domain.Loan, error) {
	m, err := scanLoan(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan: %w", err)
	}
	loan := toDomainLoan(m)
	return &loan, nil
}

// ListLoansByCustomer returns all loans applied for by one customer.
func (r *PgxLoanRepository) ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY created_at;`
	return r.list(ctx, query, customerID)
}

// ListLoansByStatus returns all loans currently in one status. The service
// layer uses this at startup to resume PENDING underwriting.
func (r *PgxLoanRepository) ListLoansByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = $1 ORDER BY created_at;`
	return r.list(ctx, query, string(status))
}

func (r *PgxLoanRepository) list(ctx context.Context, query string, arg any) ([]domain.Loan, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var out []domain.Loan
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		out = append(out, toDomainLoan(m))
	}
	return out, rows.Err()
}

// ApplyDecision writes the underwriting outcome, guarded on the row still
// being PENDING. A row that has already been decided leaves zero rows
// affected, surfaced as ErrConflict so duplicate timers and restart replays
// are harmless.
func (r *PgxLoanRepository) ApplyDecision(ctx context.Context, loan domain.Loan) error {
	m := toModelLoan(loan)

	query := `
		UPDATE loans
		SET status = $2, credit_score = $3, monthly_emi = $4, outstanding_amount = $5, approval_date = $6, updated_at = $7
		WHERE loan_id = $1 AND status = 'PENDING';
	`
	tag, err := r.pool.Exec(ctx, query,
		m.LoanID,
		m.Status,
		m.CreditScore,
		m.MonthlyEMI,
		m.OutstandingAmount,
		m.ApprovalDate,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to apply decision on loan %s: %w", m.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, findErr := r.FindLoanByID(ctx, loan.LoanID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("loan %s is no longer pending: %w", m.LoanID, apperrors.ErrConflict)
	}
	return nil
}

// UpdateLoanStatus persists an operator-driven status change together with
// the date fields the transition set.
func (r *PgxLoanRepository) UpdateLoanStatus(ctx context.Context, loan domain.Loan) error {
	m := toModelLoan(loan)

	query := `
		UPDATE loans
		SET status = $2, disbursement_date = $3, next_due_date = $4, updated_at = $5
		WHERE loan_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.LoanID,
		m.Status,
		m.DisbursementDate,
		m.NextDueDate,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update status of loan %s: %w", m.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
