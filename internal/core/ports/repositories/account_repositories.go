package repositories

import (
	"context"
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
)

// AccountRepository is the account store the core depends on.
// Implementations must return apperrors.ErrNotFound when a key does not
// resolve and apperrors.ErrDuplicate on account number collisions.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error)
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, now time.Time) error
}
