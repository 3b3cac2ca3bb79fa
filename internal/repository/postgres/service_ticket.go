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

// serviceTicketRepository - PostgreSQL implementation of ServiceTicketRepository
type serviceTicketRepository struct {
	db *pgxpool.Pool
}

// NewServiceTicketRepository creates a new serviceTicketRepository instance
func NewServiceTicketRepository(db *pgxpool.Pool) repository.ServiceTicketRepository {
	return &serviceTicketRepository{db: db}
}

func (r *serviceTicketRepository) Create(ctx context.Context, ticket *domain.ServiceTicket, mechanicIDs []uuid.UUID) error {
	// Ticket and initial links commit together: a failed link insert must not
	// leave a half-linked ticket behind
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ticket.ID = uuid.New()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = time.Now()

	ticketQuery := `
		INSERT INTO service_tickets (id, vin, service_date, description, customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, ticketQuery,
		ticket.ID,
		ticket.VIN,
		ticket.ServiceDate,
		ticket.Description,
		ticket.CustomerID,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVINTaken
		}
		return err
	}

	linkQuery := `
		INSERT INTO ticket_mechanics (ticket_id, mechanic_id, assigned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (ticket_id, mechanic_id) DO NOTHING
	`

	for _, mechanicID := range mechanicIDs {
		if _, err := tx.Exec(ctx, linkQuery, ticket.ID, mechanicID, time.Now()); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *serviceTicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceTicket, error) {
	query := `
		SELECT id, vin, service_date, description, customer_id, created_at, updated_at
		FROM service_tickets
		WHERE id = $1
	`

	ticket := &domain.ServiceTicket{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.VIN,
		&ticket.ServiceDate,
		&ticket.Description,
		&ticket.CustomerID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

func (r *serviceTicketRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*domain.ServiceTicket, error) {
	query := `
		SELECT id, vin, service_date, description, customer_id, created_at, updated_at
		FROM service_tickets
		WHERE customer_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanTickets(rows)
}

func (r *serviceTicketRepository) List(ctx context.Context, limit, offset int) ([]*domain.ServiceTicket, error) {
	query := `
		SELECT id, vin, service_date, description, customer_id, created_at, updated_at
		FROM service_tickets
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanTickets(rows)
}

func (r *serviceTicketRepository) ListAll(ctx context.Context) ([]*domain.ServiceTicket, error) {
	query := `
		SELECT id, vin, service_date, description, customer_id, created_at, updated_at
		FROM service_tickets
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanTickets(rows)
}

func (r *serviceTicketRepository) scanTickets(rows pgx.Rows) ([]*domain.ServiceTicket, error) {
	var tickets []*domain.ServiceTicket
	for rows.Next() {
		ticket := &domain.ServiceTicket{}
		err := rows.Scan(
			&ticket.ID,
			&ticket.VIN,
			&ticket.ServiceDate,
			&ticket.Description,
			&ticket.CustomerID,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}
