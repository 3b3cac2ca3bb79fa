package ticket

import (
	"context"
	"fmt"
	"time"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/repository"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

// serviceDateLayout - wire format of the service_date field
const serviceDateLayout = "2006-01-02"

// CreateTicketRequest - payload for opening a service ticket. MechanicIDs is
// optional; when present, every id must resolve or nothing is created.
type CreateTicketRequest struct {
	VIN         string      `json:"vin"`
	ServiceDate string      `json:"service_date"`
	Description string      `json:"description"`
	CustomerID  uuid.UUID   `json:"customer_id"`
	MechanicIDs []uuid.UUID `json:"mechanic_ids,omitempty"`
}

// Validate checks the creation payload
func (req *CreateTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.VIN, validation.Required, validation.Length(1, 17)),
		validation.Field(&req.ServiceDate, validation.Required, validation.Date(serviceDateLayout)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.CustomerID, validation.Required, validation.By(requiredUUID)),
	)
}

// UpdateTicketRequest - batch edit of a ticket's mechanic set. Both lists are
// mandatory: an omitted list is a validation error, not an empty edit.
type UpdateTicketRequest struct {
	AddIDs    *[]uuid.UUID `json:"add_ids"`
	RemoveIDs *[]uuid.UUID `json:"remove_ids"`
}

// Validate checks that both lists were provided
func (req *UpdateTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AddIDs, validation.NotNil),
		validation.Field(&req.RemoveIDs, validation.NotNil),
	)
}

// AttachPartRequest - payload for attaching an inventory part to a ticket
type AttachPartRequest struct {
	PartID   uuid.UUID `json:"part_id"`
	Quantity int       `json:"quantity,omitempty"`
}

// Validate checks the attachment payload. Quantity zero means "not sent" and
// defaults to 1 later; negative values are rejected.
func (req *AttachPartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PartID, validation.Required, validation.By(requiredUUID)),
		validation.Field(&req.Quantity, validation.Min(0)),
	)
}

// DetachPartRequest - payload for detaching an inventory part from a ticket
type DetachPartRequest struct {
	PartID uuid.UUID `json:"part_id"`
}

// Validate checks the detachment payload
func (req *DetachPartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PartID, validation.Required, validation.By(requiredUUID)),
	)
}

func requiredUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return fmt.Errorf("is required")
	}
	return nil
}

// Service holds the service ticket business logic
type Service struct {
	ticketRepo         repository.ServiceTicketRepository
	customerRepo       repository.CustomerRepository
	mechanicRepo       repository.MechanicRepository
	ticketMechanicRepo repository.TicketMechanicRepository
	ticketPartRepo     repository.TicketPartRepository
	partRepo           repository.InventoryPartRepository
	logger             logger.Logger
}

// NewService creates a new ticket service
func NewService(
	ticketRepo repository.ServiceTicketRepository,
	customerRepo repository.CustomerRepository,
	mechanicRepo repository.MechanicRepository,
	ticketMechanicRepo repository.TicketMechanicRepository,
	ticketPartRepo repository.TicketPartRepository,
	partRepo repository.InventoryPartRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		ticketRepo:         ticketRepo,
		customerRepo:       customerRepo,
		mechanicRepo:       mechanicRepo,
		ticketMechanicRepo: ticketMechanicRepo,
		ticketPartRepo:     ticketPartRepo,
		partRepo:           partRepo,
		logger:             logger,
	}
}

// CreateTicket opens a service ticket. When mechanic ids are supplied, every
// one of them must exist before the ticket or any assignment is written;
// unknown ids fail the whole request with the full missing set.
func (s *Service) CreateTicket(ctx context.Context, req *CreateTicketRequest) (*domain.ServiceTicket, error) {
	s.logger.Info("Creating new service ticket", map[string]interface{}{
		"vin":         req.VIN,
		"customer_id": req.CustomerID,
	})

	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	serviceDate, err := time.Parse(serviceDateLayout, req.ServiceDate)
	if err != nil {
		return nil, domain.ErrInvalidTicketData
	}

	// All-or-nothing: resolve the requested mechanics before touching the DB
	if len(req.MechanicIDs) > 0 {
		existing, err := s.mechanicRepo.GetExistingIDs(ctx, req.MechanicIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve mechanics: %w", err)
		}

		var missing []uuid.UUID
		for _, id := range req.MechanicIDs {
			if !existing[id] {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			s.logger.Warn("Ticket creation rejected: unknown mechanics", map[string]interface{}{
				"missing_ids": missing,
			})
			return nil, &domain.MissingMechanicsError{MissingIDs: missing}
		}
	}

	ticket := &domain.ServiceTicket{
		VIN:         req.VIN,
		ServiceDate: serviceDate,
		Description: req.Description,
		CustomerID:  req.CustomerID,
	}

	if err := ticket.Validate(); err != nil {
		return nil, err
	}

	// Ticket and assignment rows commit together
	if err := s.ticketRepo.Create(ctx, ticket, req.MechanicIDs); err != nil {
		s.logger.Error("Failed to create ticket", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Ticket created successfully", map[string]interface{}{
		"ticket_id": ticket.ID,
	})

	return s.GetTicketByID(ctx, ticket.ID)
}

// GetTicketByID returns a ticket with its mechanic set filled in
func (s *Service) GetTicketByID(ctx context.Context, id uuid.UUID) (*domain.ServiceTicket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mechanics, err := s.ticketMechanicRepo.GetMechanicsByTicket(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket mechanics: %w", err)
	}
	ticket.Mechanics = mechanics

	return ticket, nil
}

// ListTickets returns a page of tickets
func (s *Service) ListTickets(ctx context.Context, limit, offset int) ([]*domain.ServiceTicket, error) {
	return s.ticketRepo.List(ctx, limit, offset)
}

// ListAllTickets returns every ticket
func (s *Service) ListAllTickets(ctx context.Context) ([]*domain.ServiceTicket, error) {
	return s.ticketRepo.ListAll(ctx)
}

// GetTicketsByCustomer returns the tickets belonging to a customer
func (s *Service) GetTicketsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.ServiceTicket, error) {
	return s.ticketRepo.GetByCustomerID(ctx, customerID)
}

// BatchEditMechanics applies add and remove lists to a ticket's mechanic set.
// Every referenced mechanic must exist before any change is made; unknown ids
// fail the whole batch with the full missing set. Already-linked adds and
// not-linked removes are skipped silently. Returns the ticket with its
// resulting mechanic set.
func (s *Service) BatchEditMechanics(ctx context.Context, ticketID uuid.UUID, req *UpdateTicketRequest) (*domain.ServiceTicket, error) {
	if _, err := s.ticketRepo.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}

	addIDs := *req.AddIDs
	removeIDs := *req.RemoveIDs

	all := make([]uuid.UUID, 0, len(addIDs)+len(removeIDs))
	all = append(all, addIDs...)
	all = append(all, removeIDs...)

	if len(all) > 0 {
		existing, err := s.mechanicRepo.GetExistingIDs(ctx, all)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve mechanics: %w", err)
		}

		var missing []uuid.UUID
		for _, id := range all {
			if !existing[id] {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			s.logger.Warn("Batch edit rejected: unknown mechanics", map[string]interface{}{
				"ticket_id":   ticketID,
				"missing_ids": missing,
			})
			return nil, &domain.MissingMechanicsError{MissingIDs: missing}
		}
	}

	if err := s.ticketMechanicRepo.BatchEdit(ctx, ticketID, addIDs, removeIDs); err != nil {
		s.logger.Error("Failed to edit ticket mechanics", map[string]interface{}{
			"ticket_id": ticketID,
			"error":     err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Ticket mechanics edited", map[string]interface{}{
		"ticket_id": ticketID,
		"added":     len(addIDs),
		"removed":   len(removeIDs),
	})

	return s.GetTicketByID(ctx, ticketID)
}

// AttachPart links an inventory part to a ticket with a quantity. Attaching a
// part that is already on the ticket is a conflict; the stored quantity is
// left untouched.
func (s *Service) AttachPart(ctx context.Context, ticketID uuid.UUID, req *AttachPartRequest) (*domain.TicketPart, error) {
	if _, err := s.ticketRepo.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}
	part, err := s.partRepo.GetByID(ctx, req.PartID)
	if err != nil {
		return nil, err
	}

	attached, err := s.ticketPartRepo.Exists(ctx, ticketID, req.PartID)
	if err != nil {
		return nil, fmt.Errorf("failed to check attachment: %w", err)
	}
	if attached {
		return nil, domain.ErrPartAlreadyAttached
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	link := &domain.TicketPart{
		TicketID: ticketID,
		PartID:   req.PartID,
		Quantity: quantity,
	}
	if err := link.Validate(); err != nil {
		return nil, err
	}

	if err := s.ticketPartRepo.Create(ctx, link); err != nil {
		if err == domain.ErrPartAlreadyAttached {
			return nil, err
		}
		s.logger.Error("Failed to attach part", map[string]interface{}{
			"ticket_id": ticketID,
			"part_id":   req.PartID,
			"error":     err.Error(),
		})
		return nil, err
	}
	link.Part = part

	s.logger.Info("Part attached to ticket", map[string]interface{}{
		"ticket_id": ticketID,
		"part_id":   req.PartID,
		"quantity":  quantity,
	})

	return link, nil
}

// DetachPart removes a part link from a ticket. The link must exist.
func (s *Service) DetachPart(ctx context.Context, ticketID uuid.UUID, req *DetachPartRequest) error {
	if _, err := s.ticketRepo.GetByID(ctx, ticketID); err != nil {
		return err
	}
	if _, err := s.partRepo.GetByID(ctx, req.PartID); err != nil {
		return err
	}

	if err := s.ticketPartRepo.Delete(ctx, ticketID, req.PartID); err != nil {
		return err
	}

	s.logger.Info("Part detached from ticket", map[string]interface{}{
		"ticket_id": ticketID,
		"part_id":   req.PartID,
	})

	return nil
}
