package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/utils/idgen"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, now time.Time) error {
	args := m.Called(ctx, accountID, status, now)
	return args.Error(0)
}

// MockCustomerRepository is a mock type for the CustomerRepository interface
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockCustomerRepo *MockCustomerRepository
	service          portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockCustomerRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).
		Return(&domain.Customer{CustomerID: customerID}, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, customerID, domain.Savings)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Len(account.AccountNumber, 12)
	suite.Equal(customerID, account.CustomerID)
	suite.Equal(domain.Savings, account.AccountType)
	suite.Equal(domain.AccountActive, account.Status)
	suite.True(account.Balance.IsZero(), "new accounts must open with a zero balance")
	suite.Equal("INR", account.Currency)
	suite.EqualValues(1, account.Version)
	suite.WithinDuration(time.Now(), account.CreatedAt, time.Second)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RegeneratesOnCollision() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).
		Return(&domain.Customer{CustomerID: customerID}, nil).Once()
	// First candidate number collides, the second save succeeds.
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, customerID, domain.Current)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", 2)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_GenerationExhausted() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).
		Return(&domain.Customer{CustomerID: customerID}, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Times(idgen.MaxGenerationAttempts)

	account, err := suite.service.CreateAccount(ctx, customerID, domain.Savings)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrGenerationExhausted)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownType() {
	account, err := suite.service.CreateAccount(context.Background(), uuid.NewString(), domain.AccountType("OFFSHORE"))

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCustomer() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).
		Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, customerID, domain.Savings)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountByNumber_OwnershipEnforced() {
	ctx := context.Background()
	owner := uuid.NewString()
	stored := &domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "100011110001",
		CustomerID:    owner,
		Status:        domain.AccountActive,
	}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "100011110001").Return(stored, nil)

	account, err := suite.service.GetAccountByNumber(ctx, owner, "100011110001")
	suite.Require().NoError(err)
	suite.Equal(stored.AccountID, account.AccountID)

	_, err = suite.service.GetAccountByNumber(ctx, uuid.NewString(), "100011110001")
	suite.ErrorIs(err, apperrors.ErrForbidden)

	// An empty caller identity means an internal or admin read.
	account, err = suite.service.GetAccountByNumber(ctx, "", "100011110001")
	suite.Require().NoError(err)
	suite.Equal(stored.AccountID, account.AccountID)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountStatus_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stored := &domain.Account{AccountID: accountID, Status: domain.AccountActive}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(stored, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountStatus", ctx, accountID, domain.AccountSuspended, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	account, err := suite.service.UpdateAccountStatus(ctx, accountID, domain.AccountSuspended)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountSuspended, account.Status)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccountStatus_UnknownStatus() {
	_, err := suite.service.UpdateAccountStatus(context.Background(), uuid.NewString(), domain.AccountStatus("FROZEN"))
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountStatus")
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
