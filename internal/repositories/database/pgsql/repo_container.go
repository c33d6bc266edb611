package pgsql

import (
	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository to one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Account:     newPgxAccountRepository(dbPool),
		Transaction: newPgxTransactionRepository(dbPool),
		Loan:        newPgxLoanRepository(dbPool),
		Customer:    newPgxCustomerRepository(dbPool),
		User:        newPgxUserRepository(dbPool),
		Beneficiary: newPgxBeneficiaryRepository(dbPool),
	}
}
