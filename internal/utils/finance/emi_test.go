package finance_test

import (
	"testing"

	"github.com/Manav-gyani/Bank-Management-System/internal/utils/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyRate(t *testing.T) {
	tests := []struct {
		name   string
		annual string
		want   string
	}{
		{name: "twelve percent", annual: "12", want: "0.01"},
		{name: "eight and a half percent", annual: "8.5", want: "0.0070833333"},
		{name: "ten percent", annual: "10", want: "0.0083333333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := finance.MonthlyRate(decimal.RequireFromString(tt.annual))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"MonthlyRate(%s) = %s, want %s", tt.annual, got, tt.want)
		})
	}
}

func TestEMI(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		annual    string
		months    int
		want      string
	}{
		// 100000 at 12% over 12 months is the canonical amortization check.
		{name: "one lakh twelve percent one year", principal: "100000", annual: "12", months: 12, want: "8884.88"},
		{name: "two lakh twelve percent two years", principal: "200000", annual: "12", months: 24, want: "9414.69"},
		{name: "single month", principal: "1000", annual: "12", months: 1, want: "1010.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := finance.EMI(decimal.RequireFromString(tt.principal), decimal.RequireFromString(tt.annual), tt.months)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"EMI(%s, %s, %d) = %s, want %s", tt.principal, tt.annual, tt.months, got, tt.want)
		})
	}
}

func TestEMI_InvalidInputs(t *testing.T) {
	hundred := decimal.NewFromInt(100)

	_, err := finance.EMI(decimal.Zero, hundred, 12)
	assert.Error(t, err)

	_, err = finance.EMI(hundred, decimal.Zero, 12)
	assert.Error(t, err)

	_, err = finance.EMI(hundred, hundred, 0)
	assert.Error(t, err)

	_, err = finance.EMI(decimal.NewFromInt(-5), hundred, 12)
	assert.Error(t, err)
}

func TestDebtToIncomeRatio(t *testing.T) {
	got, err := finance.DebtToIncomeRatio(decimal.NewFromInt(10000), decimal.NewFromInt(50000))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("0.2")), "got %s", got)

	got, err = finance.DebtToIncomeRatio(decimal.Zero, decimal.NewFromInt(50000))
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	// Rounds half-up to two places.
	got, err = finance.DebtToIncomeRatio(decimal.NewFromInt(1), decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("0.33")), "got %s", got)

	_, err = finance.DebtToIncomeRatio(decimal.NewFromInt(1), decimal.Zero)
	assert.Error(t, err)
}
