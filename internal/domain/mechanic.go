package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mechanic works on service tickets through ticket_mechanics links.
// Email is unique across mechanics.
type Mechanic struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Salary       float64   `json:"salary"`
	PasswordHash string    `json:"-"` // never returned in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Filled by the popular-mechanics query, not stored in the DB
	TicketCount int `json:"ticket_count,omitempty"`
}

// Validate checks the mechanic fields required at persistence time.
func (m *Mechanic) Validate() error {
	if m.Email == "" {
		return ErrInvalidMechanicData
	}
	if m.Name == "" {
		return ErrInvalidMechanicData
	}
	if m.Salary < 0 {
		return ErrInvalidMechanicData
	}
	return nil
}
