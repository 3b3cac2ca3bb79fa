package auth

import (
	"context"
	"fmt"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/hash"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/jwt"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/repository"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// LoginRequest - credentials for either principal kind
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload
func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

// Service authenticates customers and mechanics and issues tokens
type Service struct {
	customerRepo repository.CustomerRepository
	mechanicRepo repository.MechanicRepository
	tokenService *jwt.TokenService
	logger       logger.Logger
}

// NewService creates a new auth service
func NewService(
	customerRepo repository.CustomerRepository,
	mechanicRepo repository.MechanicRepository,
	tokenService *jwt.TokenService,
	logger logger.Logger,
) *Service {
	return &Service{
		customerRepo: customerRepo,
		mechanicRepo: mechanicRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}

// LoginCustomer verifies customer credentials and returns a customer-role token
func (s *Service) LoginCustomer(ctx context.Context, req *LoginRequest) (string, error) {
	s.logger.Info("Customer login attempt", map[string]interface{}{
		"email": req.Email,
	})

	customer, err := s.customerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == domain.ErrCustomerNotFound {
			s.logger.Warn("Login failed: customer not found", map[string]interface{}{
				"email": req.Email,
			})
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get customer: %w", err)
	}

	if !hash.CheckPassword(customer.PasswordHash, req.Password) {
		s.logger.Warn("Login failed: invalid password", map[string]interface{}{
			"customer_id": customer.ID,
		})
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.IssueToken(customer.ID, domain.RoleCustomer)
	if err != nil {
		s.logger.Error("Failed to issue token", map[string]interface{}{
			"error": err.Error(),
		})
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Customer logged in successfully", map[string]interface{}{
		"customer_id": customer.ID,
	})

	return token, nil
}

// LoginMechanic verifies mechanic credentials and returns a mechanic-role token
func (s *Service) LoginMechanic(ctx context.Context, req *LoginRequest) (string, error) {
	s.logger.Info("Mechanic login attempt", map[string]interface{}{
		"email": req.Email,
	})

	mechanic, err := s.mechanicRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == domain.ErrMechanicNotFound {
			s.logger.Warn("Login failed: mechanic not found", map[string]interface{}{
				"email": req.Email,
			})
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get mechanic: %w", err)
	}

	if !hash.CheckPassword(mechanic.PasswordHash, req.Password) {
		s.logger.Warn("Login failed: invalid password", map[string]interface{}{
			"mechanic_id": mechanic.ID,
		})
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.IssueToken(mechanic.ID, domain.RoleMechanic)
	if err != nil {
		s.logger.Error("Failed to issue token", map[string]interface{}{
			"error": err.Error(),
		})
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Mechanic logged in successfully", map[string]interface{}{
		"mechanic_id": mechanic.ID,
	})

	return token, nil
}
