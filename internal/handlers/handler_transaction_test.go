package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/Manav-gyani/Bank-Management-System/internal/handlers"
	"github.com/Manav-gyani/Bank-Management-System/internal/platform/config"
	"github.com/Manav-gyani/Bank-Management-System/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Deposit(ctx context.Context, customerID, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	args := m.Called(ctx, customerID, accountNumber, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) Withdraw(ctx context.Context, customerID, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	args := m.Called(ctx, customerID, accountNumber, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) Transfer(ctx context.Context, customerID, fromAccountNumber, toAccountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, *domain.Transaction, error) {
	args := m.Called(ctx, customerID, fromAccountNumber, toAccountNumber, amount, description)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(*domain.Transaction), args.Error(2)
}
func (m *MockLedgerService) GetBalance(ctx context.Context, customerID, accountNumber string) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID, accountNumber)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) ListTransactions(ctx context.Context, customerID, accountNumber string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	args := m.Called(ctx, customerID, accountNumber, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) GetTransaction(ctx context.Context, customerID, reference string) (*domain.Transaction, error) {
	args := m.Called(ctx, customerID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockLedger *MockLedgerService
	jwtSecret  string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockLedger = new(MockLedgerService)

	suite.router = gin.New()
	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // keeps swagger routes out of the test router
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceProvider{
		Ledger: suite.mockLedger,
	})
}

// generateTestToken signs a token carrying the given customer identity.
func (suite *TransactionHandlerTestSuite) generateTestToken(customerID string, role domain.UserRole) string {
	token, err := utils.GenerateJWT(uuid.NewString(), customerID, string(role), suite.jwtSecret, time.Hour, "bms-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *TransactionHandlerTestSuite) postJSON(url string, body any, token string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestDeposit_Success() {
	customerID := uuid.NewString()
	accountNumber := "100012345678"
	amount := decimal.NewFromInt(500)

	expected := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Reference:     "TXN20250101120000001234567890",
		AccountID:     uuid.NewString(),
		Type:          domain.Deposit,
		Amount:        amount,
		BalanceAfter:  decimal.NewFromInt(1500),
		Status:        domain.TxnCompleted,
		Timestamp:     time.Now().UTC(),
	}

	suite.mockLedger.On("Deposit",
		mock.Anything,
		customerID,
		accountNumber,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(amount) }),
		"salary",
	).Return(expected, nil).Once()

	token := suite.generateTestToken(customerID, domain.RoleCustomer)
	w := suite.postJSON("/api/v1/transactions/deposit", dto.DepositRequest{
		AccountNumber: accountNumber,
		Amount:        amount,
		Description:   "salary",
	}, token)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.Reference, resp.Reference)
	suite.True(resp.BalanceAfter.Equal(expected.BalanceAfter))

	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeposit_AdminCallerSkipsOwnership() {
	accountNumber := "100012345678"
	amount := decimal.NewFromInt(500)

	expected := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Reference:     "TXN20250101120000009876543210",
		Type:          domain.Deposit,
		Amount:        amount,
		BalanceAfter:  amount,
		Status:        domain.TxnCompleted,
		Timestamp:     time.Now().UTC(),
	}

	// An admin token must reach the service with an empty customer ID.
	suite.mockLedger.On("Deposit",
		mock.Anything, "", accountNumber, mock.Anything, "",
	).Return(expected, nil).Once()

	token := suite.generateTestToken("", domain.RoleAdmin)
	w := suite.postJSON("/api/v1/transactions/deposit", dto.DepositRequest{
		AccountNumber: accountNumber,
		Amount:        amount,
	}, token)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeposit_MissingToken() {
	w := suite.postJSON("/api/v1/transactions/deposit", dto.DepositRequest{
		AccountNumber: "100012345678",
		Amount:        decimal.NewFromInt(100),
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Deposit")
}

func (suite *TransactionHandlerTestSuite) TestDeposit_MalformedAccountNumber() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleCustomer)
	w := suite.postJSON("/api/v1/transactions/deposit", dto.DepositRequest{
		AccountNumber: "12345", // not 12 digits
		Amount:        decimal.NewFromInt(100),
	}, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Deposit")
}

func (suite *TransactionHandlerTestSuite) TestWithdraw_InsufficientBalance() {
	customerID := uuid.NewString()
	accountNumber := "100012345678"

	suite.mockLedger.On("Withdraw",
		mock.Anything, customerID, accountNumber, mock.Anything, mock.Anything,
	).Return(nil, apperrors.ErrInsufficientBalance).Once()

	token := suite.generateTestToken(customerID, domain.RoleCustomer)
	w := suite.postJSON("/api/v1/transactions/withdraw", dto.WithdrawRequest{
		AccountNumber: accountNumber,
		Amount:        decimal.NewFromInt(1000000),
	}, token)

	suite.Equal(apperrors.StatusCode(apperrors.ErrInsufficientBalance), w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestTransfer_Success() {
	customerID := uuid.NewString()
	from := "100012345678"
	to := "100087654321"
	amount := decimal.NewFromInt(300)

	debit := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Reference:     "TXN20250101120000001111111111",
		Type:          domain.Transfer,
		ToAccount:     to,
		Amount:        amount,
		BalanceAfter:  decimal.NewFromInt(700),
		Status:        domain.TxnCompleted,
		Timestamp:     time.Now().UTC(),
	}
	credit := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Reference:     "TXN20250101120000002222222222",
		Type:          domain.Transfer,
		FromAccount:   from,
		Amount:        amount,
		BalanceAfter:  decimal.NewFromInt(300),
		Status:        domain.TxnCompleted,
		Timestamp:     time.Now().UTC(),
	}

	suite.mockLedger.On("Transfer",
		mock.Anything, customerID, from, to, mock.Anything, mock.Anything,
	).Return(debit, credit, nil).Once()

	token := suite.generateTestToken(customerID, domain.RoleCustomer)
	w := suite.postJSON("/api/v1/transactions/transfer", dto.TransferRequest{
		FromAccountNumber: from,
		ToAccountNumber:   to,
		Amount:            amount,
	}, token)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(debit.Reference, resp.Debit.Reference)
	suite.Equal(credit.Reference, resp.Credit.Reference)
	suite.Equal(to, resp.Debit.ToAccount)
	suite.Equal(from, resp.Credit.FromAccount)

	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestTransfer_ForbiddenSourceAccount() {
	customerID := uuid.NewString()

	suite.mockLedger.On("Transfer",
		mock.Anything, customerID, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
	).Return(nil, nil, apperrors.ErrForbidden).Once()

	token := suite.generateTestToken(customerID, domain.RoleCustomer)
	w := suite.postJSON("/api/v1/transactions/transfer", dto.TransferRequest{
		FromAccountNumber: "100012345678",
		ToAccountNumber:   "100087654321",
		Amount:            decimal.NewFromInt(100),
	}, token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetByReference_NotFound() {
	customerID := uuid.NewString()
	reference := "TXN20250101120000000000000000"

	suite.mockLedger.On("GetTransaction",
		mock.Anything, customerID, reference,
	).Return(nil, apperrors.ErrNotFound).Once()

	token := suite.generateTestToken(customerID, domain.RoleCustomer)
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/"+reference, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
