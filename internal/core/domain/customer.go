package domain

// Customer is the bank's record of an account holder.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary key (UUID)
	Name       string `json:"name"`
	Email      string `json:"email"` // Unique
	Phone      string `json:"phone"`
	AuditFields
}
