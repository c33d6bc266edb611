package repositories

import (
	"context"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
)

// CustomerRepository stores customer identity records.
type CustomerRepository interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

// UserRepository stores login credential records.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
