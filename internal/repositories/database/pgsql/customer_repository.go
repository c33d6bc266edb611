package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	"github.com/Manav-gyani/Bank-Management-System/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCustomerRepository struct {
	pool *pgxpool.Pool
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepository {
	return &PgxCustomerRepository{pool: pool}
}

var _ portsrepo.CustomerRepository = (*PgxCustomerRepository)(nil)

func toDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID: m.CustomerID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

const customerColumns = `customer_id, name, email, phone, created_at, updated_at`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(&m.CustomerID, &m.Name, &m.Email, &m.Phone, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("customer email %s already exists: %w", customer.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save customer %s: %w", customer.CustomerID, err)
	}
	return nil
}

// FindCustomerByID fetches a single customer by its primary key.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	return r.findOne(ctx, query, customerID)
}

// FindCustomerByEmail fetches a single customer by email.
func (r *PgxCustomerRepository) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1;`
	return r.findOne(ctx, query, email)
}

func (r *PgxCustomerRepository) findOne(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	m, err := scanCustomer(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	customer := toDomainCustomer(m)
	return &customer, nil
}
