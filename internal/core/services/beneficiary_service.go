package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/Manav-gyani/Bank-Management-System/internal/middleware"
	"github.com/google/uuid"
)

type beneficiaryService struct {
	beneficiaryRepo portsrepo.BeneficiaryRepository
}

// NewBeneficiaryService creates the saved-payee service.
func NewBeneficiaryService(beneficiaryRepo portsrepo.BeneficiaryRepository) portssvc.BeneficiarySvcFacade {
	return &beneficiaryService{beneficiaryRepo: beneficiaryRepo}
}

// CreateBeneficiary registers a payee for the customer. Payees start
// unverified; a customer may save each account number only once.
func (s *beneficiaryService) CreateBeneficiary(ctx context.Context, customerID string, req dto.CreateBeneficiaryRequest) (*domain.Beneficiary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	beneficiary := domain.Beneficiary{
		BeneficiaryID: uuid.NewString(),
		CustomerID:    customerID,
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		IFSCCode:      req.IFSCCode,
		Nickname:      req.Nickname,
		Verified:      false,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.beneficiaryRepo.SaveBeneficiary(ctx, beneficiary); err != nil {
		return nil, err
	}

	logger.Info("Beneficiary created",
		slog.String("beneficiary_id", beneficiary.BeneficiaryID),
		slog.String("customer_id", customerID))
	return &beneficiary, nil
}

func (s *beneficiaryService) ListBeneficiaries(ctx context.Context, customerID string) ([]domain.Beneficiary, error) {
	return s.beneficiaryRepo.ListBeneficiariesByCustomer(ctx, customerID)
}

func (s *beneficiaryService) GetBeneficiary(ctx context.Context, customerID, beneficiaryID string) (*domain.Beneficiary, error) {
	return s.findOwned(ctx, customerID, beneficiaryID)
}

// UpdateBeneficiary renames the payee. Account number, bank and IFSC are
// immutable once saved.
func (s *beneficiaryService) UpdateBeneficiary(ctx context.Context, customerID, beneficiaryID string, req dto.UpdateBeneficiaryRequest) (*domain.Beneficiary, error) {
	beneficiary, err := s.findOwned(ctx, customerID, beneficiaryID)
	if err != nil {
		return nil, err
	}

	beneficiary.Name = req.Name
	beneficiary.Nickname = req.Nickname
	beneficiary.UpdatedAt = time.Now().UTC()
	if err := s.beneficiaryRepo.UpdateBeneficiary(ctx, *beneficiary); err != nil {
		return nil, err
	}
	return beneficiary, nil
}

func (s *beneficiaryService) DeleteBeneficiary(ctx context.Context, customerID, beneficiaryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	beneficiary, err := s.findOwned(ctx, customerID, beneficiaryID)
	if err != nil {
		return err
	}
	if err := s.beneficiaryRepo.DeleteBeneficiary(ctx, beneficiary.BeneficiaryID); err != nil {
		return err
	}

	logger.Info("Beneficiary deleted",
		slog.String("beneficiary_id", beneficiaryID),
		slog.String("customer_id", beneficiary.CustomerID))
	return nil
}

// VerifyBeneficiary marks the payee as verified. The route is restricted to
// operators, so no ownership check applies here.
func (s *beneficiaryService) VerifyBeneficiary(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	beneficiary, err := s.beneficiaryRepo.FindBeneficiaryByID(ctx, beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("beneficiary %s: %w", beneficiaryID, err)
	}

	beneficiary.Verified = true
	beneficiary.UpdatedAt = time.Now().UTC()
	if err := s.beneficiaryRepo.UpdateBeneficiary(ctx, *beneficiary); err != nil {
		return nil, err
	}
	return beneficiary, nil
}

func (s *beneficiaryService) findOwned(ctx context.Context, customerID, beneficiaryID string) (*domain.Beneficiary, error) {
	beneficiary, err := s.beneficiaryRepo.FindBeneficiaryByID(ctx, beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("beneficiary %s: %w", beneficiaryID, err)
	}
	if customerID != "" && beneficiary.CustomerID != customerID {
		return nil, fmt.Errorf("%w: beneficiary %s is not held by the caller", apperrors.ErrForbidden, beneficiaryID)
	}
	return beneficiary, nil
}
