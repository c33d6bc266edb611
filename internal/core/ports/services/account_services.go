package services

import (
	"context"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
)

// AccountSvcFacade manages account records (not balances; balance mutation
// belongs to the ledger engine).
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, customerID string, accountType domain.AccountType) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, customerID, accountNumber string) (*domain.Account, error)
	ListCustomerAccounts(ctx context.Context, customerID string) ([]domain.Account, error)
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus) (*domain.Account, error)
}
