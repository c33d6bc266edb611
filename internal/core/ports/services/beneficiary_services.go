package services

import (
	"context"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
)

// BeneficiarySvcFacade manages a customer's saved payees. An empty customerID
// marks an internal or admin caller and skips ownership checks, matching the
// other facades.
type BeneficiarySvcFacade interface {
	CreateBeneficiary(ctx context.Context, customerID string, req dto.CreateBeneficiaryRequest) (*domain.Beneficiary, error)
	ListBeneficiaries(ctx context.Context, customerID string) ([]domain.Beneficiary, error)
	GetBeneficiary(ctx context.Context, customerID, beneficiaryID string) (*domain.Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, customerID, beneficiaryID string, req dto.UpdateBeneficiaryRequest) (*domain.Beneficiary, error)
	DeleteBeneficiary(ctx context.Context, customerID, beneficiaryID string) error
	VerifyBeneficiary(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error)
}
