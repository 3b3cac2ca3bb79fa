package postgres

import (
	"context"
	"time"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ticketPartRepository - PostgreSQL implementation of TicketPartRepository
type ticketPartRepository struct {
	db *pgxpool.Pool
}

// NewTicketPartRepository creates a new ticketPartRepository instance
func NewTicketPartRepository(db *pgxpool.Pool) repository.TicketPartRepository {
	return &ticketPartRepository{db: db}
}

func (r *ticketPartRepository) Create(ctx context.Context, link *domain.TicketPart) error {
	query := `
		INSERT INTO ticket_parts (ticket_id, part_id, quantity, added_at)
		VALUES ($1, $2, $3, $4)
	`

	link.AddedAt = time.Now()

	_, err := r.db.Exec(ctx, query, link.TicketID, link.PartID, link.Quantity, link.AddedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Attaching twice is a conflict, not a no-op: a second attach is
			// ambiguous with the quantity already on the link
			return domain.ErrPartAlreadyAttached
		}
		return err
	}

	return nil
}

func (r *ticketPartRepository) Exists(ctx context.Context, ticketID, partID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM ticket_parts WHERE ticket_id = $1 AND part_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, ticketID, partID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *ticketPartRepository) Delete(ctx context.Context, ticketID, partID uuid.UUID) error {
	query := `DELETE FROM ticket_parts WHERE ticket_id = $1 AND part_id = $2`

	result, err := r.db.Exec(ctx, query, ticketID, partID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPartNotAttached
	}

	return nil
}

func (r *ticketPartRepository) GetByTicket(ctx context.Context, ticketID uuid.UUID) ([]*domain.TicketPart, error) {
	query := `
		SELECT tp.ticket_id, tp.part_id, tp.quantity, tp.added_at,
		       p.id, p.part_name, p.price, p.created_at, p.updated_at
		FROM ticket_parts tp
		JOIN inventory_parts p ON p.id = tp.part_id
		WHERE tp.ticket_id = $1
		ORDER BY tp.added_at
	`

	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*domain.TicketPart
	for rows.Next() {
		link := &domain.TicketPart{Part: &domain.InventoryPart{}}
		err := rows.Scan(
			&link.TicketID,
			&link.PartID,
			&link.Quantity,
			&link.AddedAt,
			&link.Part.ID,
			&link.Part.PartName,
			&link.Part.Price,
			&link.Part.CreatedAt,
			&link.Part.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return links, rows.Err()
}
