package dto

import (
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
)

// CustomerResponse is the caller-facing view of a customer record.
type CustomerResponse struct {
	CustomerID string    `json:"customerID"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCustomerResponse maps a domain customer to its response DTO.
func ToCustomerResponse(cust *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: cust.CustomerID,
		Name:       cust.Name,
		Email:      cust.Email,
		Phone:      cust.Phone,
		CreatedAt:  cust.CreatedAt,
	}
}
