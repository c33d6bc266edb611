package services

import (
	"context"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
)

// AuthSvcFacade issues and redeems credentials. It is glue around the core:
// the core itself never authenticates callers.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Customer, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// CustomerSvcFacade reads customer identity records.
type CustomerSvcFacade interface {
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
}
