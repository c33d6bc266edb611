package domain_test

import (
	"testing"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_SignedAmount(t *testing.T) {
	hundred := decimal.NewFromInt(100)

	tests := []struct {
		name string
		txn  domain.Transaction
		own  string
		want decimal.Decimal
	}{
		{
			name: "deposit credits",
			txn:  domain.Transaction{Type: domain.Deposit, Amount: hundred},
			want: hundred,
		},
		{
			name: "withdrawal debits",
			txn:  domain.Transaction{Type: domain.Withdrawal, Amount: hundred},
			want: hundred.Neg(),
		},
		{
			name: "transfer in credits",
			txn:  domain.Transaction{Type: domain.Transfer, Amount: hundred, FromAccount: "100011112222", ToAccount: "100033334444"},
			own:  "100033334444",
			want: hundred,
		},
		{
			name: "transfer out debits",
			txn:  domain.Transaction{Type: domain.Transfer, Amount: hundred, FromAccount: "100011112222", ToAccount: "100033334444"},
			own:  "100011112222",
			want: hundred.Neg(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.txn.SignedAmount(tt.own)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}
