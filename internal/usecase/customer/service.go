package customer

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

// CreateCustomerRequest - payload for registering a customer
type CreateCustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Validate checks the creation payload
func (req *CreateCustomerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Length(0, 30)),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 72)),
	)
}

// UpdateCustomerRequest - partial update; nil fields keep their current value
type UpdateCustomerRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Validate checks only the fields that are present
func (req *UpdateCustomerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&req.Password, validation.NilOrNotEmpty, validation.Length(8, 72)),
	)
}

// Service holds the customer business logic
type Service struct {
	customerRepo repository.CustomerRepository
	logger       logger.Logger
}

// NewService creates a new customer service
func NewService(customerRepo repository.CustomerRepository, logger logger.Logger) *Service {
	return &Service{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateCustomer registers a new customer
func (s *Service) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*domain.Customer, error) {
	s.logger.Info("Creating new customer", map[string]interface{}{
		"email": req.Email,
	})

	// Duplicate email check before the insert; the unique index still backs
	// this up under concurrent registration
	existing, err := s.customerRepo.GetByEmail(ctx, req.Email)
	if err != nil && err != domain.ErrCustomerNotFound {
		return nil, fmt.Errorf("failed to check existing customer: %w", err)
	}
	if existing != nil {
		s.logger.Warn("Customer email already taken", map[string]interface{}{
			"email": req.Email,
		})
		return nil, domain.ErrCustomerEmailTaken
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customer := &domain.Customer{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
	}

	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.logger.Error("Failed to create customer", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Customer created successfully", map[string]interface{}{
		"customer_id": customer.ID,
	})

	return customer, nil
}

// GetCustomerByID returns a customer by id
func (s *Service) GetCustomerByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// UpdateCustomer applies a partial update to a customer
func (s *Service) UpdateCustomer(ctx context.Context, id uuid.UUID, req *UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Password != nil {
		passwordHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		customer.PasswordHash = passwordHash
	}

	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		s.logger.Error("Failed to update customer", map[string]interface{}{
			"customer_id": id,
			"error":       err.Error(),
		})
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer removes a customer. Tickets and link rows stay behind.
func (s *Service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Customer deleted", map[string]interface{}{
		"customer_id": id,
	})

	return nil
}

// ListCustomers returns a page of customers
func (s *Service) ListCustomers(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	return s.customerRepo.List(ctx, limit, offset)
}

// ListAllCustomers returns every customer
func (s *Service) ListAllCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.customerRepo.ListAll(ctx)
}

// SearchByEmail returns the first customer whose email contains the term
func (s *Service) SearchByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return s.customerRepo.SearchByEmail(ctx, email)
}
