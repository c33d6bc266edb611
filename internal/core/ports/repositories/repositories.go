package repositories

// RepositoryProvider bundles all repository facades for dependency injection
// into the service container.
type RepositoryProvider struct {
	Account     AccountRepository
	Transaction TransactionRepository
	Loan        LoanRepository
	Customer    CustomerRepository
	User        UserRepository
	Beneficiary BeneficiaryRepository
}
