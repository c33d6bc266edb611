package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/middleware"
	"github.com/Manav-gyani/Bank-Management-System/internal/utils/idgen"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultCurrency is the currency every new account is opened in.
const defaultCurrency = "INR"

type accountService struct {
	accountRepo  portsrepo.AccountRepository
	customerRepo portsrepo.CustomerRepository
}

// NewAccountService creates the account management service.
func NewAccountService(accountRepo portsrepo.AccountRepository, customerRepo portsrepo.CustomerRepository) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new zero-balance ACTIVE account for the customer.
// The account number is generated with a bounded uniqueness retry against
// the account store.
func (s *accountService) CreateAccount(ctx context.Context, customerID string, accountType domain.AccountType) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidAccountType(accountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CustomerID:  customerID,
		AccountType: accountType,
		Balance:     decimal.Zero,
		Currency:    defaultCurrency,
		Status:      domain.AccountActive,
		Version:     1,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	for attempt := 1; attempt <= idgen.MaxGenerationAttempts; attempt++ {
		number, err := idgen.NewAccountNumber()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}
		account.AccountNumber = number

		err = s.accountRepo.SaveAccount(ctx, account)
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Account number collision, regenerating",
				slog.String("account_number", number), slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to save account: %w", err)
		}

		logger.Info("Account created",
			slog.String("account_id", account.AccountID),
			slog.String("account_number", account.AccountNumber),
			slog.String("customer_id", customerID))
		return &account, nil
	}

	return nil, fmt.Errorf("%w: account number generation failed after %d attempts", apperrors.ErrGenerationExhausted, idgen.MaxGenerationAttempts)
}

// GetAccountByNumber returns the account if the caller holds it.
func (s *accountService) GetAccountByNumber(ctx context.Context, customerID, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", accountNumber, err)
	}
	if customerID != "" && account.CustomerID != customerID {
		return nil, fmt.Errorf("%w: account %s is not held by the caller", apperrors.ErrForbidden, accountNumber)
	}
	return account, nil
}

// ListCustomerAccounts returns every account the customer holds.
func (s *accountService) ListCustomerAccounts(ctx context.Context, customerID string) ([]domain.Account, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, err)
	}
	return s.accountRepo.ListAccountsByCustomer(ctx, customerID)
}

// UpdateAccountStatus applies an operator-driven account lifecycle change.
func (s *accountService) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	switch status {
	case domain.AccountActive, domain.AccountInactive, domain.AccountSuspended, domain.AccountClosed:
	default:
		return nil, fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, status)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", accountID, err)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, status, now); err != nil {
		return nil, fmt.Errorf("failed to update account status: %w", err)
	}
	account.Status = status
	account.UpdatedAt = now

	logger.Info("Account status updated",
		slog.String("account_id", accountID), slog.String("status", string(status)))
	return account, nil
}
