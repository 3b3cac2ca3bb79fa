package domain

import (
	"time"

	"github.com/google/uuid"
)

// InventoryPart is a stocked part. PartName is unique across the inventory.
type InventoryPart struct {
	ID        uuid.UUID `json:"id"`
	PartName  string    `json:"part_name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the part fields required at persistence time.
func (p *InventoryPart) Validate() error {
	if p.PartName == "" {
		return ErrInvalidPartData
	}
	if p.Price < 0 {
		return ErrInvalidPartData
	}
	return nil
}
