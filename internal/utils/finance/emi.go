// Package finance holds the shared amortization arithmetic used by the loan
// underwriting engine. This is the single place EMI math lives so the
// creation-time figure and the decision-time recomputation cannot drift.
package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ratePrecision is the number of fractional digits kept when converting an
// annual percentage rate to a monthly fraction.
const ratePrecision = 10

var one = decimal.NewFromInt(1)

// MonthlyRate converts an annual percentage rate to a monthly fractional
// rate: annualRatePercent / 1200, rounded half-up to ratePrecision digits.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(decimal.NewFromInt(1200)).Round(ratePrecision)
}

// EMI computes the equated monthly installment for an amortizing loan:
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate and n the tenure in months. The result is
// rounded half-up to 2 fractional digits.
func EMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("principal must be positive, got %s", principal)
	}
	if annualRatePercent.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("interest rate must be positive, got %s", annualRatePercent)
	}
	if tenureMonths <= 0 {
		return decimal.Zero, fmt.Errorf("tenure must be positive, got %d months", tenureMonths)
	}

	monthlyRate := MonthlyRate(annualRatePercent)
	compound := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(tenureMonths)))

	numerator := principal.Mul(monthlyRate).Mul(compound)
	denominator := compound.Sub(one)

	return numerator.Div(denominator).Round(2), nil
}

// DebtToIncomeRatio returns existingDebt / monthlyIncome rounded half-up to
// 2 fractional digits, the form the underwriting rule compares against.
func DebtToIncomeRatio(existingDebt, monthlyIncome decimal.Decimal) (decimal.Decimal, error) {
	if monthlyIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("monthly income must be positive, got %s", monthlyIncome)
	}
	return existingDebt.Div(monthlyIncome).Round(2), nil
}
