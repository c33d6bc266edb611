package domain

// Beneficiary is a saved payee. Customers register the payees they transfer
// to repeatedly; an operator can mark one as verified after an offline check.
// The account number may belong to another bank, so it is stored as given
// and never resolved against the accounts table.
type Beneficiary struct {
	BeneficiaryID string `json:"beneficiaryID"` // Primary key (UUID)
	CustomerID    string `json:"customerID"`    // Owning customer
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	IFSCCode      string `json:"ifscCode"`
	Nickname      string `json:"nickname"`
	Verified      bool   `json:"verified"`
	AuditFields
}
