package postgres

import (
	"context"
	"time"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ticketMechanicRepository - PostgreSQL implementation of TicketMechanicRepository
type ticketMechanicRepository struct {
	db *pgxpool.Pool
}

// NewTicketMechanicRepository creates a new ticketMechanicRepository instance
func NewTicketMechanicRepository(db *pgxpool.Pool) repository.TicketMechanicRepository {
	return &ticketMechanicRepository{db: db}
}

func (r *ticketMechanicRepository) Create(ctx context.Context, link *domain.TicketMechanic) error {
	query := `
		INSERT INTO ticket_mechanics (ticket_id, mechanic_id, assigned_at)
		VALUES ($1, $2, $3)
	`

	link.AssignedAt = time.Now()

	_, err := r.db.Exec(ctx, query, link.TicketID, link.MechanicID, link.AssignedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Pair already linked - set semantics, callers treat this as a no-op
			return nil
		}
		return err
	}

	return nil
}

func (r *ticketMechanicRepository) Exists(ctx context.Context, ticketID, mechanicID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM ticket_mechanics WHERE ticket_id = $1 AND mechanic_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, ticketID, mechanicID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *ticketMechanicRepository) Delete(ctx context.Context, ticketID, mechanicID uuid.UUID) error {
	query := `DELETE FROM ticket_mechanics WHERE ticket_id = $1 AND mechanic_id = $2`

	result, err := r.db.Exec(ctx, query, ticketID, mechanicID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrMechanicNotAssigned
	}

	return nil
}

func (r *ticketMechanicRepository) GetMechanicsByTicket(ctx context.Context, ticketID uuid.UUID) ([]*domain.Mechanic, error) {
	query := `
		SELECT m.id, m.name, m.email, m.phone, m.salary, m.password_hash, m.created_at, m.updated_at
		FROM mechanics m
		JOIN ticket_mechanics tm ON tm.mechanic_id = m.id
		WHERE tm.ticket_id = $1
		ORDER BY tm.assigned_at
	`

	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanMechanics(rows)
}

func (r *ticketMechanicRepository) BatchEdit(ctx context.Context, ticketID uuid.UUID, addIDs, removeIDs []uuid.UUID) error {
	// The whole edit commits atomically: readers see either the old mechanic
	// set or the new one, never an intermediate state
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	addQuery := `
		INSERT INTO ticket_mechanics (ticket_id, mechanic_id, assigned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (ticket_id, mechanic_id) DO NOTHING
	`

	for _, mechanicID := range addIDs {
		if _, err := tx.Exec(ctx, addQuery, ticketID, mechanicID, time.Now()); err != nil {
			return err
		}
	}

	removeQuery := `DELETE FROM ticket_mechanics WHERE ticket_id = $1 AND mechanic_id = $2`

	for _, mechanicID := range removeIDs {
		// Removing a link that is not there is skipped silently in batch mode
		if _, err := tx.Exec(ctx, removeQuery, ticketID, mechanicID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ticketMechanicRepository) scanMechanics(rows pgx.Rows) ([]*domain.Mechanic, error) {
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
