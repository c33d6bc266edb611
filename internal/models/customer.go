package models

// Customer is the persisted shape of an account holder.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	Phone      string `db:"phone"`
	AuditFields
}

// User is the persisted shape of a login credential record.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	CustomerID   string `db:"customer_id"` // Nullable for admin logins
	AuditFields
}
