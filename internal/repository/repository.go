package repository

import (
	"context"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/google/uuid"
)

// CustomerRepository defines storage operations for customers
type CustomerRepository interface {
	// Create persists a new customer and assigns its id
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID returns a customer by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)

	// GetByEmail returns a customer by exact email
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// SearchByEmail returns the first customer whose email contains the substring
	SearchByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// Update overwrites the customer row
	Update(ctx context.Context, customer *domain.Customer) error

	// Delete removes the customer row (hard delete, no cascade to tickets)
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of customers in stable created_at order
	List(ctx context.Context, limit, offset int) ([]*domain.Customer, error)

	// ListAll returns every customer in stable created_at order
	ListAll(ctx context.Context) ([]*domain.Customer, error)
}

// MechanicRepository defines storage operations for mechanics
type MechanicRepository interface {
	// Create persists a new mechanic and assigns its id
	Create(ctx context.Context, mechanic *domain.Mechanic) error

	// GetByID returns a mechanic by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Mechanic, error)

	// GetByEmail returns a mechanic by exact email
	GetByEmail(ctx context.Context, email string) (*domain.Mechanic, error)

	// GetExistingIDs filters the given ids down to those present in the store.
	// Used for the all-or-nothing checks of the relationship editor.
	GetExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	// Update overwrites the mechanic row
	Update(ctx context.Context, mechanic *domain.Mechanic) error

	// Delete removes the mechanic row (hard delete, link rows may dangle)
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of mechanics in stable created_at order
	List(ctx context.Context, limit, offset int) ([]*domain.Mechanic, error)

	// ListAll returns every mechanic in stable created_at order
	ListAll(ctx context.Context) ([]*domain.Mechanic, error)

	// ListByTicketCount returns all mechanics ordered by descending count
	// of linked tickets, with TicketCount filled in
	ListByTicketCount(ctx context.Context) ([]*domain.Mechanic, error)
}

// ServiceTicketRepository defines storage operations for service tickets
type ServiceTicketRepository interface {
	// Create persists a new ticket together with its initial mechanic links
	// in one transaction. mechanicIDs may be empty.
	Create(ctx context.Context, ticket *domain.ServiceTicket, mechanicIDs []uuid.UUID) error

	// GetByID returns a ticket by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceTicket, error)

	// GetByCustomerID returns all tickets belonging to a customer
	GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*domain.ServiceTicket, error)

	// List returns a page of tickets in stable created_at order
	List(ctx context.Context, limit, offset int) ([]*domain.ServiceTicket, error)

	// ListAll returns every ticket in stable created_at order
	ListAll(ctx context.Context) ([]*domain.ServiceTicket, error)
}

// TicketMechanicRepository defines storage operations for ticket-mechanic links
type TicketMechanicRepository interface {
	// Create inserts a link row
	Create(ctx context.Context, link *domain.TicketMechanic) error

	// Exists reports whether the (ticket, mechanic) pair is linked
	Exists(ctx context.Context, ticketID, mechanicID uuid.UUID) (bool, error)

	// Delete removes the link; returns domain.ErrMechanicNotAssigned when absent
	Delete(ctx context.Context, ticketID, mechanicID uuid.UUID) error

	// GetMechanicsByTicket returns the mechanics linked to a ticket
	GetMechanicsByTicket(ctx context.Context, ticketID uuid.UUID) ([]*domain.Mechanic, error)

	// BatchEdit applies the add and remove lists to a ticket's mechanic set
	// in one transaction. Adds of already-linked mechanics and removes of
	// not-linked mechanics are skipped silently.
	BatchEdit(ctx context.Context, ticketID uuid.UUID, addIDs, removeIDs []uuid.UUID) error
}

// TicketPartRepository defines storage operations for ticket-part links
type TicketPartRepository interface {
	// Create inserts a link row with its quantity;
	// returns domain.ErrPartAlreadyAttached on a duplicate pair
	Create(ctx context.Context, link *domain.TicketPart) error

	// Exists reports whether the (ticket, part) pair is linked
	Exists(ctx context.Context, ticketID, partID uuid.UUID) (bool, error)

	// Delete removes the link; returns domain.ErrPartNotAttached when absent
	Delete(ctx context.Context, ticketID, partID uuid.UUID) error

	// GetByTicket returns the part links of a ticket with parts filled in
	GetByTicket(ctx context.Context, ticketID uuid.UUID) ([]*domain.TicketPart, error)
}

// InventoryPartRepository defines storage operations for inventory parts
type InventoryPartRepository interface {
	// Create persists a new part and assigns its id
	Create(ctx context.Context, part *domain.InventoryPart) error

	// GetByID returns a part by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryPart, error)

	// GetByPartName returns a part by exact name
	GetByPartName(ctx context.Context, partName string) (*domain.InventoryPart, error)

	// SearchByPartName returns the first part whose name contains the substring
	SearchByPartName(ctx context.Context, partName string) (*domain.InventoryPart, error)

	// Update overwrites the part row
	Update(ctx context.Context, part *domain.InventoryPart) error

	// Delete removes the part row (hard delete, link rows may dangle)
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of parts in stable created_at order
	List(ctx context.Context, limit, offset int) ([]*domain.InventoryPart, error)

	// ListAll returns every part in stable created_at order
	ListAll(ctx context.Context) ([]*domain.InventoryPart, error)
}
