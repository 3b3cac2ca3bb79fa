package inventory

import (
	"context"
	"fmt"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/repository"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

// CreatePartRequest - payload for adding an inventory part
type CreatePartRequest struct {
	PartName string  `json:"part_name"`
	Price    float64 `json:"price"`
}

// Validate checks the creation payload
func (req *CreatePartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PartName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Price, validation.Min(0.0)),
	)
}

// UpdatePartRequest - partial update; nil fields keep their current value
type UpdatePartRequest struct {
	PartName *string  `json:"part_name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// Validate checks only the fields that are present
func (req *UpdatePartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PartName, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Price, validation.Min(0.0)),
	)
}

// Service holds the inventory business logic
type Service struct {
	partRepo repository.InventoryPartRepository
	logger   logger.Logger
}

// NewService creates a new inventory service
func NewService(partRepo repository.InventoryPartRepository, logger logger.Logger) *Service {
	return &Service{
		partRepo: partRepo,
		logger:   logger,
	}
}

// CreatePart adds a new part to the inventory
func (s *Service) CreatePart(ctx context.Context, req *CreatePartRequest) (*domain.InventoryPart, error) {
	s.logger.Info("Creating new inventory part", map[string]interface{}{
		"part_name": req.PartName,
	})

	existing, err := s.partRepo.GetByPartName(ctx, req.PartName)
	if err != nil && err != domain.ErrPartNotFound {
		return nil, fmt.Errorf("failed to check existing part: %w", err)
	}
	if existing != nil {
		s.logger.Warn("Part name already taken", map[string]interface{}{
			"part_name": req.PartName,
		})
		return nil, domain.ErrPartNameTaken
	}

	part := &domain.InventoryPart{
		PartName: req.PartName,
		Price:    req.Price,
	}

	if err := part.Validate(); err != nil {
		return nil, err
	}

	if err := s.partRepo.Create(ctx, part); err != nil {
		s.logger.Error("Failed to create part", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Part created successfully", map[string]interface{}{
		"part_id": part.ID,
	})

	return part, nil
}

// GetPartByID returns a part by id
func (s *Service) GetPartByID(ctx context.Context, id uuid.UUID) (*domain.InventoryPart, error) {
	return s.partRepo.GetByID(ctx, id)
}

// UpdatePart applies a partial update to a part
func (s *Service) UpdatePart(ctx context.Context, id uuid.UUID, req *UpdatePartRequest) (*domain.InventoryPart, error) {
	part, err := s.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PartName != nil {
		part.PartName = *req.PartName
	}
	if req.Price != nil {
		part.Price = *req.Price
	}

	if err := part.Validate(); err != nil {
		return nil, err
	}

	if err := s.partRepo.Update(ctx, part); err != nil {
		s.logger.Error("Failed to update part", map[string]interface{}{
			"part_id": id,
			"error":   err.Error(),
		})
		return nil, err
	}

	return part, nil
}

// DeletePart removes a part. Ticket link rows stay behind.
func (s *Service) DeletePart(ctx context.Context, id uuid.UUID) error {
	if err := s.partRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Part deleted", map[string]interface{}{
		"part_id": id,
	})

	return nil
}

// ListParts returns a page of parts
func (s *Service) ListParts(ctx context.Context, limit, offset int) ([]*domain.InventoryPart, error) {
	return s.partRepo.List(ctx, limit, offset)
}

// ListAllParts returns every part
func (s *Service) ListAllParts(ctx context.Context) ([]*domain.InventoryPart, error) {
	return s.partRepo.ListAll(ctx)
}

// SearchByPartName returns the first part whose name contains the term
func (s *Service) SearchByPartName(ctx context.Context, partName string) (*domain.InventoryPart, error) {
	return s.partRepo.SearchByPartName(ctx, partName)
}
