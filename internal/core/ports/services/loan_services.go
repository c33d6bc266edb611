package services

import (
	"context"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
)

// LoanSvcFacade is the loan underwriting engine.
type LoanSvcFacade interface {
	// CreateLoan computes the EMI, persists the loan as PENDING and schedules
	// the one-shot deferred underwriting decision. It returns immediately;
	// the decision runs on a background worker.
	CreateLoan(ctx context.Context, customerID string, req dto.CreateLoanRequest) (*domain.Loan, error)

	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
	ListCustomerLoans(ctx context.Context, customerID string) ([]domain.Loan, error)

	// Underwrite runs the rule-based decision. It only transitions a loan out
	// of PENDING; invoking it on an already-decided loan is a no-op.
	Underwrite(ctx context.Context, loanID string) (*domain.Loan, error)

	// UpdateLoanStatus applies an operator-driven transition, validated
	// against the loan state machine.
	UpdateLoanStatus(ctx context.Context, loanID string, status domain.LoanStatus) (*domain.Loan, error)

	// ResumePendingUnderwriting reschedules the deferred decision for every
	// PENDING loan; called once at startup so a process restart neither loses
	// nor duplicates pending decisions.
	ResumePendingUnderwriting(ctx context.Context) error
}
