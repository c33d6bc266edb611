package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanType classifies a loan product.
type LoanType string

const (
	HomeLoan      LoanType = "HOME"
	PersonalLoan  LoanType = "PERSONAL"
	CarLoan       LoanType = "CAR"
	EducationLoan LoanType = "EDUCATION"
	BusinessLoan  LoanType = "BUSINESS"
)

// ValidLoanType reports whether t names a known loan product.
func ValidLoanType(t LoanType) bool {
	switch t {
	case HomeLoan, PersonalLoan, CarLoan, EducationLoan, BusinessLoan:
		return true
	}
	return false
}

// LoanStatus is the lifecycle state of a loan application.
type LoanStatus string

const (
	LoanPending   LoanStatus = "PENDING"
	LoanApproved  LoanStatus = "APPROVED"
	LoanRejected  LoanStatus = "REJECTED"
	LoanDisbursed LoanStatus = "DISBURSED"
	LoanActive    LoanStatus = "ACTIVE"
	LoanClosed    LoanStatus = "CLOSED"
)

// loanTransitions is the explicit legality table for operator-driven status
// changes. The PENDING decision transition belongs to the underwriting engine
// and is applied through a compare-and-set, not through this table.
var loanTransitions = map[LoanStatus][]LoanStatus{
	LoanApproved:  {LoanDisbursed, LoanRejected},
	LoanDisbursed: {LoanActive, LoanRejected},
	LoanActive:    {LoanClosed, LoanRejected},
	LoanPending:   {LoanRejected},
}

// CanTransition reports whether an operator may move a loan from one status to
// another. No transition ever returns to PENDING, and terminal states
// (REJECTED, CLOSED) admit no further transitions.
func CanTransition(from, to LoanStatus) bool {
	for _, allowed := range loanTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Loan is a loan application together with its underwriting inputs.
// The loan references its funding account by identifier only.
type Loan struct {
	LoanID            string          `json:"loanID"`     // Primary key (UUID)
	LoanNumber        string          `json:"loanNumber"` // Unique generated number
	CustomerID        string          `json:"customerID"`
	AccountID         string          `json:"accountID"` // Funding account
	LoanType          LoanType        `json:"loanType"`
	PrincipalAmount   decimal.Decimal `json:"principalAmount"`
	InterestRate      decimal.Decimal `json:"interestRate"` // Annual percent
	TenureMonths      int             `json:"tenureMonths"`
	MonthlyEMI        decimal.Decimal `json:"monthlyEmi"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	Status            LoanStatus      `json:"status"`
	CreditScore       int             `json:"creditScore"` // 0 means not supplied
	MonthlyIncome     decimal.Decimal `json:"monthlyIncome"`
	ExistingDebt      decimal.Decimal `json:"existingDebt"`
	CollateralValue   decimal.Decimal `json:"collateralValue"`
	DisbursementDate  *time.Time      `json:"disbursementDate,omitempty"`
	NextDueDate       *time.Time      `json:"nextDueDate,omitempty"`
	ApprovalDate      *time.Time      `json:"approvalDate,omitempty"`
	AuditFields
}
