package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is the persisted shape of a loan application and its underwriting
// inputs.
type Loan struct {
	LoanID            string          `db:"loan_id"`
	LoanNumber        string          `db:"loan_number"`
	CustomerID        string          `db:"customer_id"`
	AccountID         string          `db:"account_id"`
	LoanType          string          `db:"loan_type"`
	PrincipalAmount   decimal.Decimal `db:"principal_amount"`
	InterestRate      decimal.Decimal `db:"interest_rate"`
	TenureMonths      int             `db:"tenure_months"`
	MonthlyEMI        decimal.Decimal `db:"monthly_emi"`
	OutstandingAmount decimal.Decimal `db:"outstanding_amount"`
	Status            string          `db:"status"`
	CreditScore       int             `db:"credit_score"`
	MonthlyIncome     decimal.Decimal `db:"monthly_income"`
	ExistingDebt      decimal.Decimal `db:"existing_debt"`
	CollateralValue   decimal.Decimal `db:"collateral_value"`
	DisbursementDate  *time.Time      `db:"disbursement_date"` // Nullable
	NextDueDate       *time.Time      `db:"next_due_date"`     // Nullable
	ApprovalDate      *time.Time      `db:"approval_date"`     // Nullable
	AuditFields
}
