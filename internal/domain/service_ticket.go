package domain

import (
	"time"

	"github.com/google/uuid"
)

// ServiceTicket is a unit of work on a customer's vehicle.
// VIN is unique; CustomerID must reference an existing customer at creation.
// Deleting the customer later does NOT cascade to its tickets.
type ServiceTicket struct {
	ID          uuid.UUID `json:"id"`
	VIN         string    `json:"vin"`
	ServiceDate time.Time `json:"service_date"`
	Description string    `json:"description"`
	CustomerID  uuid.UUID `json:"customer_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Related data, filled on demand (not stored on the tickets row)
	Customer  *Customer   `json:"customer,omitempty"`
	Mechanics []*Mechanic `json:"mechanics,omitempty"`
}

// Validate checks the ticket fields required at persistence time.
func (t *ServiceTicket) Validate() error {
	if t.VIN == "" {
		return ErrInvalidTicketData
	}
	if t.Description == "" {
		return ErrInvalidTicketData
	}
	if t.CustomerID == uuid.Nil {
		return ErrInvalidTicketData
	}
	return nil
}
