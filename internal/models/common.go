package models

import "time"

// AuditFields holds standard audit columns shared by all persisted models.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
