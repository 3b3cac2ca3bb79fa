package mechanic

import (
	"context"
	"fmt"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/hash"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/repository"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

// CreateMechanicRequest - payload for registering a mechanic
type CreateMechanicRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Salary   float64 `json:"salary"`
	Password string  `json:"password"`
}

// Validate checks the creation payload
func (req *CreateMechanicRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Length(0, 30)),
		validation.Field(&req.Salary, validation.Min(0.0)),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 72)),
	)
}

// UpdateMechanicRequest - partial update; nil fields keep their current value
type UpdateMechanicRequest struct {
	Name     *string  `json:"name,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Salary   *float64 `json:"salary,omitempty"`
	Password *string  `json:"password,omitempty"`
}

// Validate checks only the fields that are present
func (req *UpdateMechanicRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&req.Salary, validation.Min(0.0)),
		validation.Field(&req.Password, validation.NilOrNotEmpty, validation.Length(8, 72)),
	)
}

// Service holds the mechanic business logic, including ticket assignment
type Service struct {
	mechanicRepo       repository.MechanicRepository
	ticketRepo         repository.ServiceTicketRepository
	ticketMechanicRepo repository.TicketMechanicRepository
	logger             logger.Logger
}

// NewService creates a new mechanic service
func NewService(
	mechanicRepo repository.MechanicRepository,
	ticketRepo repository.ServiceTicketRepository,
	ticketMechanicRepo repository.TicketMechanicRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		mechanicRepo:       mechanicRepo,
		ticketRepo:         ticketRepo,
		ticketMechanicRepo: ticketMechanicRepo,
		logger:             logger,
	}
}

// CreateMechanic registers a new mechanic
func (s *Service) CreateMechanic(ctx context.Context, req *CreateMechanicRequest) (*domain.Mechanic, error) {
	s.logger.Info("Creating new mechanic", map[string]interface{}{
		"email": req.Email,
	})

	existing, err := s.mechanicRepo.GetByEmail(ctx, req.Email)
	if err != nil && err != domain.ErrMechanicNotFound {
		return nil, fmt.Errorf("failed to check existing mechanic: %w", err)
	}
	if existing != nil {
		s.logger.Warn("Mechanic email already taken", map[string]interface{}{
			"email": req.Email,
		})
		return nil, domain.ErrMechanicEmailTaken
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	mechanic := &domain.Mechanic{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Salary:       req.Salary,
		PasswordHash: passwordHash,
	}

	if err := mechanic.Validate(); err != nil {
		return nil, err
	}

	if err := s.mechanicRepo.Create(ctx, mechanic); err != nil {
		s.logger.Error("Failed to create mechanic", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Mechanic created successfully", map[string]interface{}{
		"mechanic_id": mechanic.ID,
	})

	return mechanic, nil
}

// GetMechanicByID returns a mechanic by id
func (s *Service) GetMechanicByID(ctx context.Context, id uuid.UUID) (*domain.Mechanic, error) {
	return s.mechanicRepo.GetByID(ctx, id)
}

// UpdateMechanic applies a partial update to a mechanic
func (s *Service) UpdateMechanic(ctx context.Context, id uuid.UUID, req *UpdateMechanicRequest) (*domain.Mechanic, error) {
	mechanic, err := s.mechanicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		mechanic.Name = *req.Name
	}
	if req.Email != nil {
		mechanic.Email = *req.Email
	}
	if req.Phone != nil {
		mechanic.Phone = *req.Phone
	}
	if req.Salary != nil {
		mechanic.Salary = *req.Salary
	}
	if req.Password != nil {
		passwordHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		mechanic.PasswordHash = passwordHash
	}

	if err := mechanic.Validate(); err != nil {
		return nil, err
	}

	if err := s.mechanicRepo.Update(ctx, mechanic); err != nil {
		s.logger.Error("Failed to update mechanic", map[string]interface{}{
			"mechanic_id": id,
			"error":       err.Error(),
		})
		return nil, err
	}

	return mechanic, nil
}

// DeleteMechanic removes a mechanic. Assignment rows stay behind.
func (s *Service) DeleteMechanic(ctx context.Context, id uuid.UUID) error {
	if err := s.mechanicRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Mechanic deleted", map[string]interface{}{
		"mechanic_id": id,
	})

	return nil
}

// ListMechanics returns a page of mechanics
func (s *Service) ListMechanics(ctx context.Context, limit, offset int) ([]*domain.Mechanic, error) {
	return s.mechanicRepo.List(ctx, limit, offset)
}

// ListAllMechanics returns every mechanic
func (s *Service) ListAllMechanics(ctx context.Context) ([]*domain.Mechanic, error) {
	return s.mechanicRepo.ListAll(ctx)
}

// PopularMechanics returns all mechanics ordered by the number of tickets
// they are assigned to, busiest first
func (s *Service) PopularMechanics(ctx context.Context) ([]*domain.Mechanic, error) {
	return s.mechanicRepo.ListByTicketCount(ctx)
}

// AssignToTicket links a mechanic to a ticket. A repeated assignment is not
// an error: the bool result reports whether the link already existed.
func (s *Service) AssignToTicket(ctx context.Context, mechanicID, ticketID uuid.UUID) (bool, error) {
	if _, err := s.mechanicRepo.GetByID(ctx, mechanicID); err != nil {
		return false, err
	}
	if _, err := s.ticketRepo.GetByID(ctx, ticketID); err != nil {
		return false, err
	}

	exists, err := s.ticketMechanicRepo.Exists(ctx, ticketID, mechanicID)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	if exists {
		return true, nil
	}

	link := &domain.TicketMechanic{
		TicketID:   ticketID,
		MechanicID: mechanicID,
	}
	if err := s.ticketMechanicRepo.Create(ctx, link); err != nil {
		s.logger.Error("Failed to assign mechanic", map[string]interface{}{
			"mechanic_id": mechanicID,
			"ticket_id":   ticketID,
			"error":       err.Error(),
		})
		return false, err
	}

	s.logger.Info("Mechanic assigned to ticket", map[string]interface{}{
		"mechanic_id": mechanicID,
		"ticket_id":   ticketID,
	})

	return false, nil
}

// RemoveFromTicket unlinks a mechanic from a ticket. Removing a link that
// does not exist is an error (domain.ErrMechanicNotAssigned), unlike the
// idempotent assignment above.
func (s *Service) RemoveFromTicket(ctx context.Context, mechanicID, ticketID uuid.UUID) error {
	if _, err := s.mechanicRepo.GetByID(ctx, mechanicID); err != nil {
		return err
	}
	if _, err := s.ticketRepo.GetByID(ctx, ticketID); err != nil {
		return err
	}

	if err := s.ticketMechanicRepo.Delete(ctx, ticketID, mechanicID); err != nil {
		return err
	}

	s.logger.Info("Mechanic removed from ticket", map[string]interface{}{
		"mechanic_id": mechanicID,
		"ticket_id":   ticketID,
	})

	return nil
}
