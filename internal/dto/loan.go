package dto

import (
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest applies for a loan against the acting customer's funding
// account. InterestRate is optional; the per-type default annual rate is used
// when absent. CreditScore is optional; a simulated score is assigned during
// underwriting when absent.
type CreateLoanRequest struct {
	AccountID       string           `json:"accountID" binding:"required"`
	LoanType        domain.LoanType  `json:"loanType" binding:"required,loantype"`
	PrincipalAmount decimal.Decimal  `json:"principalAmount" binding:"required"`
	InterestRate    *decimal.Decimal `json:"interestRate,omitempty"`
	TenureMonths    int              `json:"tenureMonths" binding:"required,gt=0"`
	CreditScore     int              `json:"creditScore,omitempty"`
	MonthlyIncome   decimal.Decimal  `json:"monthlyIncome" binding:"required"`
	ExistingDebt    decimal.Decimal  `json:"existingDebt"`
	CollateralValue decimal.Decimal  `json:"collateralValue"`
}

// UpdateLoanStatusRequest is the operator-driven status transition.
type UpdateLoanStatusRequest struct {
	Status domain.LoanStatus `json:"status" binding:"required"`
}

// LoanResponse is the caller-facing view of a loan.
type LoanResponse struct {
	LoanID            string            `json:"loanID"`
	LoanNumber        string            `json:"loanNumber"`
	CustomerID        string            `json:"customerID"`
	AccountID         string            `json:"accountID"`
	LoanType          domain.LoanType   `json:"loanType"`
	PrincipalAmount   decimal.Decimal   `json:"principalAmount"`
	InterestRate      decimal.Decimal   `json:"interestRate"`
	TenureMonths      int               `json:"tenureMonths"`
	MonthlyEMI        decimal.Decimal   `json:"monthlyEmi"`
	OutstandingAmount decimal.Decimal   `json:"outstandingAmount"`
	Status            domain.LoanStatus `json:"status"`
	CreditScore       int               `json:"creditScore,omitempty"`
	DisbursementDate  *time.Time        `json:"disbursementDate,omitempty"`
	NextDueDate       *time.Time        `json:"nextDueDate,omitempty"`
	ApprovalDate      *time.Time        `json:"approvalDate,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// ToLoanResponse maps a domain loan to its response DTO.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:            l.LoanID,
		LoanNumber:        l.LoanNumber,
		CustomerID:        l.CustomerID,
		AccountID:         l.AccountID,
		LoanType:          l.LoanType,
		PrincipalAmount:   l.PrincipalAmount,
		InterestRate:      l.InterestRate,
		TenureMonths:      l.TenureMonths,
		MonthlyEMI:        l.MonthlyEMI,
		OutstandingAmount: l.OutstandingAmount,
		Status:            l.Status,
		CreditScore:       l.CreditScore,
		DisbursementDate:  l.DisbursementDate,
		NextDueDate:       l.NextDueDate,
		ApprovalDate:      l.ApprovalDate,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

// ToLoanResponses maps a slice of domain loans.
func ToLoanResponses(loans []domain.Loan) []LoanResponse {
	out := make([]LoanResponse, len(loans))
	for i := range loans {
		out[i] = ToLoanResponse(&loans[i])
	}
	return out
}
