package services

// ServiceProvider bundles all service facades for handler registration.
type ServiceProvider struct {
	Ledger      LedgerSvcFacade
	Account     AccountSvcFacade
	Loan        LoanSvcFacade
	Auth        AuthSvcFacade
	Customer    CustomerSvcFacade
	Beneficiary BeneficiarySvcFacade
}
