package services

import (
	"time"

	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
)

// ContainerConfig carries the knobs the service container needs beyond
// repositories.
type ContainerConfig struct {
	Auth               AuthConfig
	UnderwritingDelay  time.Duration
	LoanServiceOptions []LoanServiceOption
}

// NewContainer wires all services against the given repositories.
func NewContainer(repos *portsrepo.RepositoryProvider, cfg ContainerConfig) *portssvc.ServiceProvider {
	loanOptions := cfg.LoanServiceOptions
	if cfg.UnderwritingDelay > 0 {
		loanOptions = append(loanOptions, WithDecisionDelay(cfg.UnderwritingDelay))
	}

	return &portssvc.ServiceProvider{
		Ledger:      NewLedgerService(repos.Account, repos.Transaction),
		Account:     NewAccountService(repos.Account, repos.Customer),
		Loan:        NewLoanService(repos.Loan, repos.Account, loanOptions...),
		Auth:        NewAuthService(repos.User, repos.Customer, cfg.Auth),
		Customer:    NewCustomerService(repos.Customer),
		Beneficiary: NewBeneficiaryService(repos.Beneficiary),
	}
}
