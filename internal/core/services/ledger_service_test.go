package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/Manav-gyani/Bank-Management-System/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LedgerServiceTestSuite runs the ledger engine against the in-memory store,
// which enforces the same versioned atomic write contract as the pgsql
// implementation. This makes the concurrency properties testable for real
// instead of against mocks.
type LedgerServiceTestSuite struct {
	suite.Suite
	repos   *portsrepo.RepositoryProvider
	service portssvc.LedgerSvcFacade

	customerID string
	otherID    string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.repos = memory.NewRepositoryProvider()
	suite.service = services.NewLedgerService(suite.repos.Account, suite.repos.Transaction)
	suite.customerID = uuid.NewString()
	suite.otherID = uuid.NewString()
}

// seedAccount creates an ACTIVE account with the given balance directly in
// the store.
func (suite *LedgerServiceTestSuite) seedAccount(customerID, number, balance string) domain.Account {
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: number,
		CustomerID:    customerID,
		AccountType:   domain.Savings,
		Balance:       decimal.RequireFromString(balance),
		Currency:      "INR",
		Status:        domain.AccountActive,
		Version:       1,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	suite.Require().NoError(suite.repos.Account.SaveAccount(context.Background(), account))
	return account
}

func (suite *LedgerServiceTestSuite) balanceOf(number string) decimal.Decimal {
	account, err := suite.repos.Account.FindAccountByNumber(context.Background(), number)
	suite.Require().NoError(err)
	return account.Balance
}

func (suite *LedgerServiceTestSuite) TestDeposit_Success() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "0")

	txn, err := suite.service.Deposit(ctx, suite.customerID, "100011110001", decimal.NewFromInt(500), "opening deposit")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.Deposit, txn.Type)
	suite.Equal(domain.TxnCompleted, txn.Status)
	suite.True(txn.BalanceAfter.Equal(decimal.NewFromInt(500)))
	suite.NotEmpty(txn.Reference)
	suite.True(suite.balanceOf("100011110001").Equal(decimal.NewFromInt(500)))
}

func (suite *LedgerServiceTestSuite) TestDeposit_RejectsNonPositiveAmount() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "0")

	_, err := suite.service.Deposit(ctx, suite.customerID, "100011110001", decimal.Zero, "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Deposit(ctx, suite.customerID, "100011110001", decimal.NewFromInt(-10), "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestDeposit_UnknownAccount() {
	_, err := suite.service.Deposit(context.Background(), suite.customerID, "100099999999", decimal.NewFromInt(10), "")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// Suspension blocks transfers only. Deposits and withdrawals still post
// against a SUSPENDED account so the ledger keeps accepting money movement
// an operator has already approved out of band.
func (suite *LedgerServiceTestSuite) TestDeposit_SuspendedAccountStillCredits() {
	ctx := context.Background()
	account := suite.seedAccount(suite.customerID, "100011110001", "100")
	suite.Require().NoError(suite.repos.Account.UpdateAccountStatus(ctx, account.AccountID, domain.AccountSuspended, time.Now().UTC()))

	txn, err := suite.service.Deposit(ctx, suite.customerID, "100011110001", decimal.NewFromInt(50), "")
	suite.Require().NoError(err)
	suite.Equal(domain.TxnCompleted, txn.Status)
	suite.True(suite.balanceOf("100011110001").Equal(decimal.NewFromInt(150)))
}

func (suite *LedgerServiceTestSuite) TestWithdraw_SuspendedAccountStillDebits() {
	ctx := context.Background()
	account := suite.seedAccount(suite.customerID, "100011110001", "100")
	suite.Require().NoError(suite.repos.Account.UpdateAccountStatus(ctx, account.AccountID, domain.AccountSuspended, time.Now().UTC()))

	txn, err := suite.service.Withdraw(ctx, suite.customerID, "100011110001", decimal.NewFromInt(40), "")
	suite.Require().NoError(err)
	suite.True(txn.BalanceAfter.Equal(decimal.NewFromInt(60)))
	suite.True(suite.balanceOf("100011110001").Equal(decimal.NewFromInt(60)))
}

func (suite *LedgerServiceTestSuite) TestWithdraw_Success() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "1000")

	txn, err := suite.service.Withdraw(ctx, suite.customerID, "100011110001", decimal.NewFromInt(400), "rent")

	suite.Require().NoError(err)
	suite.Equal(domain.Withdrawal, txn.Type)
	suite.True(txn.BalanceAfter.Equal(decimal.NewFromInt(600)))
	suite.True(suite.balanceOf("100011110001").Equal(decimal.NewFromInt(600)))
}

func (suite *LedgerServiceTestSuite) TestWithdraw_InsufficientBalance() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "0")

	// Deposit 1000 then try to withdraw 1500: the deposit stands, the
	// withdrawal fails, and the balance still shows the full 1000.
	_, err := suite.service.Deposit(ctx, suite.customerID, "100011110001", decimal.NewFromInt(1000), "")
	suite.Require().NoError(err)

	_, err = suite.service.Withdraw(ctx, suite.customerID, "100011110001", decimal.NewFromInt(1500), "")
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)

	suite.True(suite.balanceOf("100011110001").Equal(decimal.NewFromInt(1000)))

	txns, err := suite.repos.Transaction.ListTransactionsByAccount(ctx, suite.accountID("100011110001"))
	suite.Require().NoError(err)
	suite.Len(txns, 1, "the failed withdrawal must not leave a transaction record")
}

func (suite *LedgerServiceTestSuite) TestWithdraw_ForbiddenForNonOwner() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "1000")

	_, err := suite.service.Withdraw(ctx, suite.otherID, "100011110001", decimal.NewFromInt(10), "")
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.True(suite.balanceOf("100011110001").Equal(decimal.NewFromInt(1000)))
}

func (suite *LedgerServiceTestSuite) TestConcurrentWithdrawals_NeverOverdraw() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "500")

	// 10 concurrent withdrawals of 100 against a balance of 500: exactly 5
	// succeed, the rest fail with insufficient balance, and the final
	// balance is exactly zero.
	const workers = 10
	amount := decimal.NewFromInt(100)

	var wg sync.WaitGroup
	succeeded := make(chan struct{}, workers)
	failed := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.service.Withdraw(ctx, suite.customerID, "100011110001", amount, "")
			if err != nil {
				failed <- err
			} else {
				succeeded <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(succeeded)
	close(failed)

	suite.Len(succeeded, 5)
	for err := range failed {
		suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	}
	suite.True(suite.balanceOf("100011110001").IsZero(), "balance must land exactly on zero")
}

func (suite *LedgerServiceTestSuite) TestConcurrentDeposits_AllRecorded() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "0")

	const workers = 20
	amount := decimal.NewFromInt(10)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.service.Deposit(ctx, suite.customerID, "100011110001", amount, "")
			suite.NoError(err)
		}()
	}
	wg.Wait()

	suite.True(suite.balanceOf("100011110001").Equal(decimal.NewFromInt(workers*10)))

	txns, err := suite.repos.Transaction.ListTransactionsByAccount(ctx, suite.accountID("100011110001"))
	suite.Require().NoError(err)
	suite.Len(txns, workers)
}

func (suite *LedgerServiceTestSuite) TestTransfer_MovesMoneyAtomically() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "1000")
	suite.seedAccount(suite.otherID, "100011110002", "200")

	debit, credit, err := suite.service.Transfer(ctx, suite.customerID, "100011110001", "100011110002", decimal.NewFromInt(300), "")

	suite.Require().NoError(err)
	suite.Equal(domain.Transfer, debit.Type)
	suite.Equal(domain.Transfer, credit.Type)
	suite.Equal("100011110001", debit.FromAccount)
	suite.Equal("100011110002", debit.ToAccount)
	suite.True(debit.Amount.Equal(credit.Amount))
	suite.True(debit.BalanceAfter.Equal(decimal.NewFromInt(700)))
	suite.True(credit.BalanceAfter.Equal(decimal.NewFromInt(500)))
	suite.Equal("Transfer to 100011110002", debit.Description)
	suite.Equal("Received from 100011110001", credit.Description)

	suite.True(suite.balanceOf("100011110001").Equal(decimal.NewFromInt(700)))
	suite.True(suite.balanceOf("100011110002").Equal(decimal.NewFromInt(500)))
}

func (suite *LedgerServiceTestSuite) TestTransfer_InsufficientFundsLeavesBothUntouched() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "100")
	suite.seedAccount(suite.otherID, "100011110002", "200")

	_, _, err := suite.service.Transfer(ctx, suite.customerID, "100011110001", "100011110002", decimal.NewFromInt(300), "")

	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.True(suite.balanceOf("100011110001").Equal(decimal.NewFromInt(100)))
	suite.True(suite.balanceOf("100011110002").Equal(decimal.NewFromInt(200)))

	txns, err := suite.repos.Transaction.ListTransactionsByAccount(ctx, suite.accountID("100011110002"))
	suite.Require().NoError(err)
	suite.Empty(txns, "the failed transfer must not leave a credit leg")
}

func (suite *LedgerServiceTestSuite) TestTransfer_RejectsSameAccount() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "1000")

	_, _, err := suite.service.Transfer(ctx, suite.customerID, "100011110001", "100011110001", decimal.NewFromInt(10), "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestTransfer_ForbiddenFromForeignSource() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "1000")
	suite.seedAccount(suite.otherID, "100011110002", "0")

	_, _, err := suite.service.Transfer(ctx, suite.otherID, "100011110001", "100011110002", decimal.NewFromInt(10), "")
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LedgerServiceTestSuite) TestTransfer_InactiveDestination() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "1000")
	dest := suite.seedAccount(suite.otherID, "100011110002", "0")
	suite.Require().NoError(suite.repos.Account.UpdateAccountStatus(ctx, dest.AccountID, domain.AccountClosed, time.Now().UTC()))

	_, _, err := suite.service.Transfer(ctx, suite.customerID, "100011110001", "100011110002", decimal.NewFromInt(10), "")
	suite.ErrorIs(err, apperrors.ErrAccountNotActive)
	suite.True(suite.balanceOf("100011110001").Equal(decimal.NewFromInt(1000)))
}

func (suite *LedgerServiceTestSuite) TestConcurrentOppositeTransfers_ConserveTotal() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "1000")
	suite.seedAccount(suite.customerID, "100011110002", "1000")

	// Opposite-direction transfers between the same pair: no deadlock, and
	// the combined balance is conserved no matter how they interleave.
	const rounds = 20
	amount := decimal.NewFromInt(5)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, _, err := suite.service.Transfer(ctx, suite.customerID, "100011110001", "100011110002", amount, "")
			suite.NoError(err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, _, err := suite.service.Transfer(ctx, suite.customerID, "100011110002", "100011110001", amount, "")
			suite.NoError(err)
		}
	}()
	wg.Wait()

	total := suite.balanceOf("100011110001").Add(suite.balanceOf("100011110002"))
	suite.True(total.Equal(decimal.NewFromInt(2000)), "total across both accounts must be conserved, got %s", total)
}

func (suite *LedgerServiceTestSuite) TestGetBalance_HasNoSideEffect() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "750")

	balance, err := suite.service.GetBalance(ctx, suite.customerID, "100011110001")
	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(750)))

	txns, err := suite.repos.Transaction.ListTransactionsByAccount(ctx, suite.accountID("100011110001"))
	suite.Require().NoError(err)
	suite.Empty(txns)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_TimeWindow() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "0")

	_, err := suite.service.Deposit(ctx, suite.customerID, "100011110001", decimal.NewFromInt(100), "inside")
	suite.Require().NoError(err)

	from := time.Now().UTC().Add(-time.Minute)
	to := time.Now().UTC().Add(time.Minute)
	txns, err := suite.service.ListTransactions(ctx, suite.customerID, "100011110001", dto.ListTransactionsParams{From: &from, To: &to})
	suite.Require().NoError(err)
	suite.Len(txns, 1)

	past := time.Now().UTC().Add(-2 * time.Hour)
	pastEnd := time.Now().UTC().Add(-time.Hour)
	txns, err = suite.service.ListTransactions(ctx, suite.customerID, "100011110001", dto.ListTransactionsParams{From: &past, To: &pastEnd})
	suite.Require().NoError(err)
	suite.Empty(txns)
}

func (suite *LedgerServiceTestSuite) TestBalanceEqualsSumOfTransactionEffects() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "0")

	suite.mustDeposit("100011110001", 1000)
	suite.mustWithdraw("100011110001", 300)
	suite.mustDeposit("100011110001", 50)

	accountID := suite.accountID("100011110001")
	txns, err := suite.repos.Transaction.ListTransactionsByAccount(ctx, accountID)
	suite.Require().NoError(err)

	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.SignedAmount("100011110001"))
	}
	suite.True(suite.balanceOf("100011110001").Equal(sum), "balance must equal the sum of completed transaction effects")
}

func (suite *LedgerServiceTestSuite) TestGetTransactionByReference() {
	ctx := context.Background()
	suite.seedAccount(suite.customerID, "100011110001", "0")

	txn, err := suite.service.Deposit(ctx, suite.customerID, "100011110001", decimal.NewFromInt(250), "")
	suite.Require().NoError(err)

	found, err := suite.service.GetTransaction(ctx, suite.customerID, txn.Reference)
	suite.Require().NoError(err)
	suite.Equal(txn.TransactionID, found.TransactionID)

	// Another customer must not see the entry.
	_, err = suite.service.GetTransaction(ctx, suite.otherID, txn.Reference)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	// Internal callers skip the ownership check.
	_, err = suite.service.GetTransaction(ctx, "", txn.Reference)
	suite.NoError(err)

	_, err = suite.service.GetTransaction(ctx, suite.customerID, "TXNmissing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) accountID(number string) string {
	account, err := suite.repos.Account.FindAccountByNumber(context.Background(), number)
	suite.Require().NoError(err)
	return account.AccountID
}

func (suite *LedgerServiceTestSuite) mustDeposit(number string, amount int64) {
	_, err := suite.service.Deposit(context.Background(), suite.customerID, number, decimal.NewFromInt(amount), "")
	suite.Require().NoError(err)
}

func (suite *LedgerServiceTestSuite) mustWithdraw(number string, amount int64) {
	_, err := suite.service.Withdraw(context.Background(), suite.customerID, number, decimal.NewFromInt(amount), "")
	suite.Require().NoError(err)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
