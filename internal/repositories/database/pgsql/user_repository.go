package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	"github.com/Manav-gyani/Bank-Management-System/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// newPgxUserRepository creates a new repository for login credentials.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		CustomerID:   m.CustomerID,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

const userColumns = `user_id, username, email, password_hash, role, customer_id, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	var customerID sql.NullString
	err := row.Scan(&m.UserID, &m.Username, &m.Email, &m.PasswordHash, &m.Role, &customerID, &m.CreatedAt, &m.UpdatedAt)
	m.CustomerID = customerID.String
	return m, err
}

// SaveUser inserts a new login record.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	var customerID sql.NullString
	if user.CustomerID != "" {
		customerID = sql.NullString{String: user.CustomerID, Valid: true}
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		customerID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %s already exists: %w", user.Username, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID fetches a single login record by its primary key.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return r.findOne(ctx, query, userID)
}

// FindUserByUsername fetches a single login record by username.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	return r.findOne(ctx, query, username)
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	m, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user := toDomainUser(m)
	return &user, nil
}
