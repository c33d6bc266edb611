package domain

// UserRole controls which operations a login may perform.
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleAdmin    UserRole = "ADMIN"
)

// User is a login credential record, linked to at most one customer.
type User struct {
	UserID       string   `json:"userID"`   // Primary key (UUID)
	Username     string   `json:"username"` // Unique
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // bcrypt
	Role         UserRole `json:"role"`
	CustomerID   string   `json:"customerID"` // Empty for admin logins
	AuditFields
}
