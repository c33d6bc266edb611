package repositories

import (
	"context"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
)

// LoanRepository is the loan store the underwriting engine depends on.
type LoanRepository interface {
	SaveLoan(ctx context.Context, loan domain.Loan) error
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
	FindLoanByNumber(ctx context.Context, loanNumber string) (*domain.Loan, error)
	ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error)
	ListLoansByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error)

	// ApplyDecision persists the underwriting outcome (status, credit score,
	// recomputed EMI, approval date) if and only if the stored loan is still
	// PENDING. A loan that was already decided yields apperrors.ErrConflict,
	// which makes the deferred decision idempotent under timer duplication
	// and restart replay.
	ApplyDecision(ctx context.Context, loan domain.Loan) error

	// UpdateLoanStatus persists an operator-driven status change together
	// with any date fields the transition sets.
	UpdateLoanStatus(ctx context.Context, loan domain.Loan) error
}
