// Package memory provides an in-memory implementation of every repository
// port. It backs the service test suites and the no-database run mode; the
// pgsql package is the durable implementation.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
)

// Store holds all records behind a single RWMutex. Writes that must be
// atomic (balance + transaction) run under one critical section, which gives
// the same all-or-nothing guarantee the pgsql implementation gets from a DB
// transaction.
type Store struct {
	mu sync.RWMutex

	accountsByID     map[string]*domain.Account
	accountsByNumber map[string]string // account number -> account ID

	transactions     []*domain.Transaction
	txnByReference   map[string]*domain.Transaction
	txnsByAccount    map[string][]*domain.Transaction

	loansByID     map[string]*domain.Loan
	loansByNumber map[string]string // loan number -> loan ID

	customersByID    map[string]*domain.Customer
	customersByEmail map[string]string

	usersByID       map[string]*domain.User
	usersByUsername map[string]string

	beneficiariesByID       map[string]*domain.Beneficiary
	beneficiaryOwnerAccount map[string]string // customer ID + "/" + account number -> beneficiary ID
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accountsByID:     make(map[string]*domain.Account),
		accountsByNumber: make(map[string]string),
		txnByReference:   make(map[string]*domain.Transaction),
		txnsByAccount:    make(map[string][]*domain.Transaction),
		loansByID:        make(map[string]*domain.Loan),
		loansByNumber:    make(map[string]string),
		customersByID:    make(map[string]*domain.Customer),
		customersByEmail: make(map[string]string),
		usersByID:        make(map[string]*domain.User),
		usersByUsername:  make(map[string]string),

		beneficiariesByID:       make(map[string]*domain.Beneficiary),
		beneficiaryOwnerAccount: make(map[string]string),
	}
}

// NewRepositoryProvider wires every repository facade to one shared store.
func NewRepositoryProvider() *portsrepo.RepositoryProvider {
	s := NewStore()
	return &portsrepo.RepositoryProvider{
		Account:     s,
		Transaction: s,
		Loan:        s,
		Customer:    s,
		User:        s,
		Beneficiary: s,
	}
}

var (
	_ portsrepo.AccountRepository     = (*Store)(nil)
	_ portsrepo.TransactionRepository = (*Store)(nil)
	_ portsrepo.LoanRepository        = (*Store)(nil)
	_ portsrepo.CustomerRepository    = (*Store)(nil)
	_ portsrepo.UserRepository        = (*Store)(nil)
	_ portsrepo.BeneficiaryRepository = (*Store)(nil)
)

// --- AccountRepository ---

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accountsByNumber[account.AccountNumber]; exists {
		return fmt.Errorf("account number %s: %w", account.AccountNumber, apperrors.ErrDuplicate)
	}
	if _, exists := s.accountsByID[account.AccountID]; exists {
		return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrDuplicate)
	}

	copied := account
	s.accountsByID[account.AccountID] = &copied
	s.accountsByNumber[account.AccountNumber] = account.AccountID
	return nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountByIDLocked(accountID)
}

func (s *Store) accountByIDLocked(accountID string) (*domain.Account, error) {
	acc, ok := s.accountsByID[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *acc
	return &copied, nil
}

func (s *Store) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.accountsByNumber[accountNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.accountByIDLocked(id)
}

func (s *Store) ListAccountsByCustomer(ctx context.Context, customerID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Account
	for _, acc := range s.accountsByID {
		if acc.CustomerID == customerID {
			out = append(out, *acc)
		}
	}
	return out, nil
}

func (s *Store) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accountsByID[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	acc.Status = status
	acc.UpdatedAt = now
	return nil
}

// --- TransactionRepository ---

// checkBalanceWriteLocked verifies the account exists and the caller's
// observed version still matches, without writing anything.
func (s *Store) checkBalanceWriteLocked(account domain.Account) error {
	stored, ok := s.accountsByID[account.AccountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != account.Version {
		return fmt.Errorf("account %s version %d moved to %d: %w",
			account.AccountID, account.Version, stored.Version, apperrors.ErrConflict)
	}
	return nil
}

// checkReferencesLocked verifies none of the references is already recorded.
func (s *Store) checkReferencesLocked(txns ...domain.Transaction) error {
	for _, txn := range txns {
		if _, exists := s.txnByReference[txn.Reference]; exists {
			return fmt.Errorf("transaction reference %s: %w", txn.Reference, apperrors.ErrDuplicate)
		}
	}
	return nil
}

// applyBalanceLocked writes the account's new balance, bumping the version.
// Callers must have passed checkBalanceWriteLocked first.
func (s *Store) applyBalanceLocked(account domain.Account) {
	stored := s.accountsByID[account.AccountID]
	stored.Balance = account.Balance
	stored.Version++
	stored.UpdatedAt = time.Now().UTC()
}

func (s *Store) appendTransactionLocked(txn domain.Transaction) {
	copied := txn
	s.transactions = append(s.transactions, &copied)
	s.txnByReference[txn.Reference] = &copied
	s.txnsByAccount[txn.AccountID] = append(s.txnsByAccount[txn.AccountID], &copied)
}

func (s *Store) ApplyTransaction(ctx context.Context, account domain.Account, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate every precondition before mutating anything, so a failure
	// cannot leave the balance written without its transaction row.
	if err := s.checkBalanceWriteLocked(account); err != nil {
		return err
	}
	if err := s.checkReferencesLocked(txn); err != nil {
		return err
	}

	s.applyBalanceLocked(account)
	s.appendTransactionLocked(txn)
	return nil
}

func (s *Store) ApplyTransfer(ctx context.Context, from domain.Account, fromTxn domain.Transaction, to domain.Account, toTxn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check both versions and both references before touching either side,
	// so any failure leaves accounts and history exactly as they were.
	for _, acc := range []domain.Account{from, to} {
		if err := s.checkBalanceWriteLocked(acc); err != nil {
			return err
		}
	}
	if err := s.checkReferencesLocked(fromTxn, toTxn); err != nil {
		return err
	}

	s.applyBalanceLocked(from)
	s.applyBalanceLocked(to)
	s.appendTransactionLocked(fromTxn)
	s.appendTransactionLocked(toTxn)
	return nil
}

func (s *Store) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.txnByReference[reference]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *txn
	return &copied, nil
}

func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.txnsByAccount[accountID]
	out := make([]domain.Transaction, len(src))
	for i, txn := range src {
		out[i] = *txn
	}
	return out, nil
}

func (s *Store) ListTransactionsByAccountAndRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Transaction
	for _, txn := range s.txnsByAccount[accountID] {
		if txn.Timestamp.Before(from) || txn.Timestamp.After(to) {
			continue
		}
		out = append(out, *txn)
	}
	return out, nil
}

// --- LoanRepository ---

func (s *Store) SaveLoan(ctx context.Context, loan domain.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.loansByNumber[loan.LoanNumber]; exists {
		return fmt.Errorf("loan number %s: %w", loan.LoanNumber, apperrors.ErrDuplicate)
	}
	copied := loan
	s.loansByID[loan.LoanID] = &copied
	s.loansByNumber[loan.LoanNumber] = loan.LoanID
	return nil
}

func (s *Store) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loan, ok := s.loansByID[loanID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *loan
	return &copied, nil
}

func (s *Store) FindLoanByNumber(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.loansByNumber[loanNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *s.loansByID[id]
	return &copied, nil
}

func (s *Store) ListLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Loan
	for _, loan := range s.loansByID {
		if loan.CustomerID == customerID {
			out = append(out, *loan)
		}
	}
	return out, nil
}

func (s *Store) ListLoansByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Loan
	for _, loan := range s.loansByID {
		if loan.Status == status {
			out = append(out, *loan)
		}
	}
	return out, nil
}

func (s *Store) ApplyDecision(ctx context.Context, loan domain.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.loansByID[loan.LoanID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Status != domain.LoanPending {
		return fmt.Errorf("loan %s already %s: %w", loan.LoanID, stored.Status, apperrors.ErrConflict)
	}
	copied := loan
	s.loansByID[loan.LoanID] = &copied
	return nil
}

// UpdateLoanStatus writes only the lifecycle fields, mirroring the pgsql
// UPDATE's column list. A racing underwriting decision keeps its credit
// score, EMI and approval date even if this write lands second.
func (s *Store) UpdateLoanStatus(ctx context.Context, loan domain.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.loansByID[loan.LoanID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.Status = loan.Status
	stored.DisbursementDate = loan.DisbursementDate
	stored.NextDueDate = loan.NextDueDate
	stored.UpdatedAt = loan.UpdatedAt
	return nil
}

// --- BeneficiaryRepository ---

func beneficiaryOwnerKey(customerID, accountNumber string) string {
	return customerID + "/" + accountNumber
}

func (s *Store) SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := beneficiaryOwnerKey(beneficiary.CustomerID, beneficiary.AccountNumber)
	if _, exists := s.beneficiaryOwnerAccount[key]; exists {
		return fmt.Errorf("beneficiary account %s: %w", beneficiary.AccountNumber, apperrors.ErrDuplicate)
	}
	copied := beneficiary
	s.beneficiariesByID[beneficiary.BeneficiaryID] = &copied
	s.beneficiaryOwnerAccount[key] = beneficiary.BeneficiaryID
	return nil
}

func (s *Store) FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	beneficiary, ok := s.beneficiariesByID[beneficiaryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *beneficiary
	return &copied, nil
}

func (s *Store) ListBeneficiariesByCustomer(ctx context.Context, customerID string) ([]domain.Beneficiary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Beneficiary
	for _, beneficiary := range s.beneficiariesByID {
		if beneficiary.CustomerID == customerID {
			out = append(out, *beneficiary)
		}
	}
	return out, nil
}

// UpdateBeneficiary writes only the mutable fields, mirroring the pgsql
// UPDATE's column list.
func (s *Store) UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.beneficiariesByID[beneficiary.BeneficiaryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.Name = beneficiary.Name
	stored.Nickname = beneficiary.Nickname
	stored.Verified = beneficiary.Verified
	stored.UpdatedAt = beneficiary.UpdatedAt
	return nil
}

func (s *Store) DeleteBeneficiary(ctx context.Context, beneficiaryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.beneficiariesByID[beneficiaryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	delete(s.beneficiariesByID, beneficiaryID)
	delete(s.beneficiaryOwnerAccount, beneficiaryOwnerKey(stored.CustomerID, stored.AccountNumber))
	return nil
}

// --- CustomerRepository ---

func (s *Store) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customersByEmail[customer.Email]; exists {
		return fmt.Errorf("email %s: %w", customer.Email, apperrors.ErrDuplicate)
	}
	copied := customer
	s.customersByID[customer.CustomerID] = &copied
	s.customersByEmail[customer.Email] = customer.CustomerID
	return nil
}

func (s *Store) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customersByID[customerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *customer
	return &copied, nil
}

func (s *Store) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.customersByEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *s.customersByID[id]
	return &copied, nil
}

// --- UserRepository ---

func (s *Store) SaveUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByUsername[user.Username]; exists {
		return fmt.Errorf("username %s: %w", user.Username, apperrors.ErrDuplicate)
	}
	copied := user
	s.usersByID[user.UserID] = &copied
	s.usersByUsername[user.Username] = user.UserID
	return nil
}

func (s *Store) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByID[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByUsername[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *s.usersByID[id]
	return &copied, nil
}
