package dto

import (
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
)

// CreateBeneficiaryRequest registers a saved payee. The account number is
// not restricted to this bank's 12-digit format; payees at other banks are
// identified by bank name and IFSC code.
type CreateBeneficiaryRequest struct {
	Name          string `json:"name" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required,numeric"`
	BankName      string `json:"bankName" binding:"required"`
	IFSCCode      string `json:"ifscCode" binding:"required"`
	Nickname      string `json:"nickname"`
}

// UpdateBeneficiaryRequest renames a saved payee. Account details are
// immutable; delete and re-create to point at a different account.
type UpdateBeneficiaryRequest struct {
	Name     string `json:"name" binding:"required"`
	Nickname string `json:"nickname"`
}

// BeneficiaryResponse is the caller-facing view of a saved payee.
type BeneficiaryResponse struct {
	BeneficiaryID string    `json:"beneficiaryID"`
	CustomerID    string    `json:"customerID"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"accountNumber"`
	BankName      string    `json:"bankName"`
	IFSCCode      string    `json:"ifscCode"`
	Nickname      string    `json:"nickname"`
	Verified      bool      `json:"verified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToBeneficiaryResponse maps a domain beneficiary to its response DTO.
func ToBeneficiaryResponse(b *domain.Beneficiary) BeneficiaryResponse {
	return BeneficiaryResponse{
		BeneficiaryID: b.BeneficiaryID,
		CustomerID:    b.CustomerID,
		Name:          b.Name,
		AccountNumber: b.AccountNumber,
		BankName:      b.BankName,
		IFSCCode:      b.IFSCCode,
		Nickname:      b.Nickname,
		Verified:      b.Verified,
		CreatedAt:     b.CreatedAt,
	}
}

// ToBeneficiaryResponses maps a slice of domain beneficiaries.
func ToBeneficiaryResponses(list []domain.Beneficiary) []BeneficiaryResponse {
	out := make([]BeneficiaryResponse, len(list))
	for i := range list {
		out[i] = ToBeneficiaryResponse(&list[i])
	}
	return out
}
