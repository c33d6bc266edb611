package dto

import (
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest opens a new account for the acting customer.
type CreateAccountRequest struct {
	AccountType domain.AccountType `json:"accountType" binding:"required,accounttype"`
}

// UpdateAccountStatusRequest changes an account's lifecycle state.
type UpdateAccountStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required"`
}

// AccountResponse is the caller-facing view of an account.
type AccountResponse struct {
	AccountID     string               `json:"accountID"`
	AccountNumber string               `json:"accountNumber"`
	CustomerID    string               `json:"customerID"`
	AccountType   domain.AccountType   `json:"accountType"`
	Balance       decimal.Decimal      `json:"balance"`
	Currency      string               `json:"currency"`
	Status        domain.AccountStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// ToAccountResponse maps a domain account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		AccountNumber: a.AccountNumber,
		CustomerID:    a.CustomerID,
		AccountType:   a.AccountType,
		Balance:       a.Balance,
		Currency:      a.Currency,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ToAccountResponses maps a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}

// BalanceResponse carries a read-only balance snapshot.
type BalanceResponse struct {
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
}
