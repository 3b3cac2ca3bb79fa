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

// mechanicRepository - PostgreSQL implementation of MechanicRepository
type mechanicRepository struct {
	db *pgxpool.Pool
}

// NewMechanicRepository creates a new mechanicRepository instance
func NewMechanicRepository(db *pgxpool.Pool) repository.MechanicRepository {
	return &mechanicRepository{db: db}
}

func (r *mechanicRepository) Create(ctx context.Context, mechanic *domain.Mechanic) error {
	query := `
		INSERT INTO mechanics (id, name, email, phone, salary, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	mechanic.ID = uuid.New()
	mechanic.CreatedAt = time.Now()
	mechanic.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		mechanic.ID,
		mechanic.Name,
		mechanic.Email,
		mechanic.Phone,
		mechanic.Salary,
		mechanic.PasswordHash,
		mechanic.CreatedAt,
		mechanic.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMechanicEmailTaken
		}
		return err
	}

	return nil
}

func (r *mechanicRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mechanic, error) {
	query := `
		SELECT id, name, email, phone, salary, password_hash, created_at, updated_at
		FROM mechanics
		WHERE id = $1
	`

	return r.scanMechanicRow(r.db.QueryRow(ctx, query, id))
}

func (r *mechanicRepository) GetByEmail(ctx context.Context, email string) (*domain.Mechanic, error) {
	query := `
		SELECT id, name, email, phone, salary, password_hash, created_at, updated_at
		FROM mechanics
		WHERE email = $1
	`

	return r.scanMechanicRow(r.db.QueryRow(ctx, query, email))
}

func (r *mechanicRepository) GetExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	existing := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	query := `SELECT id FROM mechanics WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = true
	}

	return existing, rows.Err()
}

func (r *mechanicRepository) Update(ctx context.Context, mechanic *domain.Mechanic) error {
	query := `
		UPDATE mechanics
		SET name = $2, email = $3, phone = $4, salary = $5, password_hash = $6, updated_at = $7
		WHERE id = $1
	`

	mechanic.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		mechanic.ID,
		mechanic.Name,
		mechanic.Email,
		mechanic.Phone,
		mechanic.Salary,
		mechanic.PasswordHash,
		mechanic.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMechanicEmailTaken
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrMechanicNotFound
	}

	return nil
}

func (r *mechanicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Hard delete - ticket_mechanics rows referencing the mechanic may dangle
	query := `DELETE FROM mechanics WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrMechanicNotFound
	}

	return nil
}

func (r *mechanicRepository) List(ctx context.Context, limit, offset int) ([]*domain.Mechanic, error) {
	query := `
		SELECT id, name, email, phone, salary, password_hash, created_at, updated_at
		FROM mechanics
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanMechanics(rows)
}

func (r *mechanicRepository) ListAll(ctx context.Context) ([]*domain.Mechanic, error) {
	query := `
		SELECT id, name, email, phone, salary, password_hash, created_at, updated_at
		FROM mechanics
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanMechanics(rows)
}

func (r *mechanicRepository) ListByTicketCount(ctx context.Context) ([]*domain.Mechanic, error) {
	// Mechanics who worked on the most tickets first; created_at breaks ties
	// so the ordering is stable between calls
	query := `
		SELECT m.id, m.name, m.email, m.phone, m.salary, m.password_hash,
		       m.created_at, m.updated_at, COUNT(tm.ticket_id) AS ticket_count
		FROM mechanics m
		LEFT JOIN ticket_mechanics tm ON tm.mechanic_id = m.id
		GROUP BY m.id
		ORDER BY ticket_count DESC, m.created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mechanics []*domain.Mechanic
	for rows.Next() {
		mechanic := &domain.Mechanic{}
		err := rows.Scan(
			&mechanic.ID,
			&mechanic.Name,
			&mechanic.Email,
			&mechanic.Phone,
			&mechanic.Salary,
			&mechanic.PasswordHash,
			&mechanic.CreatedAt,
			&mechanic.UpdatedAt,
			&mechanic.TicketCount,
		)
		if err != nil {
			return nil, err
		}
		mechanics = append(mechanics, mechanic)
	}

	return mechanics, rows.Err()
}

func (r *mechanicRepository) scanMechanicRow(row pgx.Row) (*domain.Mechanic, error) {
	mechanic := &domain.Mechanic{}
	err := row.Scan(
		&mechanic.ID,
		&mechanic.Name,
		&mechanic.Email,
		&mechanic.Phone,
		&mechanic.Salary,
		&mechanic.PasswordHash,
		&mechanic.CreatedAt,
		&mechanic.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMechanicNotFound
		}
		return nil, err
	}

	return mechanic, nil
}

func (r *mechanicRepository) scanMechanics(rows pgx.Rows) ([]*domain.Mechanic, error) {
	var mechanics []*domain.Mechanic
	for rows.Next() {
		mechanic := &domain.Mechanic{}
		err := rows.Scan(
			&mechanic.ID,
			&mechanic.Name,
			&mechanic.Email,
			&mechanic.Phone,
			&mechanic.Salary,
			&mechanic.PasswordHash,
			&mechanic.CreatedAt,
			&mechanic.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		mechanics = append(mechanics, mechanic)
	}

	return mechanics, rows.Err()
}
