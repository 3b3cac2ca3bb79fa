package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// customerRepository - PostgreSQL implementation of CustomerRepository
type customerRepository struct {
	db *pgxpool.Pool
}

// NewCustomerRepository creates a new customerRepository instance
func NewCustomerRepository(db *pgxpool.Pool) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	customer.ID = uuid.New()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.PasswordHash,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCustomerEmailTaken
		}
		return err
	}

	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	return r.scanCustomerRow(r.db.QueryRow(ctx, query, id))
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM customers
		WHERE email = $1
	`

	return r.scanCustomerRow(r.db.QueryRow(ctx, query, email))
}

func (r *customerRepository) SearchByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	// Substring match, first hit only - matches are not assumed unique
	query := `
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM customers
		WHERE email ILIKE '%' || $1 || '%'
		ORDER BY created_at
		LIMIT 1
	`

	return r.scanCustomerRow(r.db.QueryRow(ctx, query, email))
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, password_hash = $5, updated_at = $6
		WHERE id = $1
	`

	customer.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.PasswordHash,
		customer.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCustomerEmailTaken
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Hard delete - ticket rows referencing the customer are left in place
	query := `DELETE FROM customers WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM customers
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanCustomers(rows)
}

func (r *customerRepository) ListAll(ctx context.Context) ([]*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM customers
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanCustomers(rows)
}

func (r *customerRepository) scanCustomerRow(row pgx.Row) (*domain.Customer, error) {
	customer := &domain.Customer{}
	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.PasswordHash,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	return customer, nil
}

func (r *customerRepository) scanCustomers(rows pgx.Rows) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	for rows.Next() {
		customer := &domain.Customer{}
		err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Email,
			&customer.Phone,
			&customer.PasswordHash,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	return customers, rows.Err()
}
