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
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/Manav-gyani/Bank-Management-System/internal/middleware"
	"github.com/Manav-gyani/Bank-Management-System/internal/utils"
	"github.com/google/uuid"
)

// AuthConfig carries the token-signing parameters the auth service needs.
type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

// authService handles registration and login. It is glue around the core:
// nothing in the ledger or underwriting engines ever sees a password or a
// token, only the customer ID handlers extract from the verified claims.
type authService struct {
	userRepo     portsrepo.UserRepository
	customerRepo portsrepo.CustomerRepository
	cfg          AuthConfig
}

// NewAuthService creates the auth service.
func NewAuthService(userRepo portsrepo.UserRepository, customerRepo portsrepo.CustomerRepository, cfg AuthConfig) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		cfg:          cfg,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Register creates a customer record and its login credential.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerRepo.FindCustomerByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, req.Email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username %s already taken", apperrors.ErrDuplicate, req.Username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password: %v", apperrors.ErrInternal, err)
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		CustomerID:   customer.CustomerID,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("Customer registered",
		slog.String("customer_id", customer.CustomerID),
		slog.String("username", req.Username))
	return &customer, nil
}

// Login verifies credentials and issues an access token carrying the user's
// customer ID and role.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login failed, bad password", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.UserID, user.CustomerID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to sign token: %v", apperrors.ErrInternal, err)
	}

	logger.Info("Login succeeded", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.cfg.JWTExpiry.Seconds()),
		CustomerID:  user.CustomerID,
	}, nil
}

// customerService reads customer identity records.
type customerService struct {
	customerRepo portsrepo.CustomerRepository
}

// NewCustomerService creates the customer read service.
func NewCustomerService(customerRepo portsrepo.CustomerRepository) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, err)
	}
	return customer, nil
}
