package repositories

import (
	"context"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
)

// BeneficiaryRepository is the saved-payee store the core depends on.
// Implementations must return apperrors.ErrNotFound when a key does not
// resolve and apperrors.ErrDuplicate when the owner already saved the same
// account number. UpdateBeneficiary writes only name, nickname, verified and
// updated_at.
type BeneficiaryRepository interface {
	SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error
	FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error)
	ListBeneficiariesByCustomer(ctx context.Context, customerID string) ([]domain.Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error
	DeleteBeneficiary(ctx context.Context, beneficiaryID string) error
}
