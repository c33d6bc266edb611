package models

// Beneficiary is the persisted shape of a saved payee.
type Beneficiary struct {
	BeneficiaryID string `db:"beneficiary_id"`
	CustomerID    string `db:"customer_id"`
	Name          string `db:"name"`
	AccountNumber string `db:"account_number"`
	BankName      string `db:"bank_name"`
	IFSCCode      string `db:"ifsc_code"`
	Nickname      string `db:"nickname"`
	Verified      bool   `db:"verified"`
	AuditFields
}
