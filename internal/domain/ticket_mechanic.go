package domain

import (
	"time"

	"github.com/google/uuid"
)

// TicketMechanic links a service ticket and a mechanic (many-to-many).
// The (ticket, mechanic) pair is unique - set semantics, no duplicates.
type TicketMechanic struct {
	TicketID   uuid.UUID `json:"ticket_id"`
	MechanicID uuid.UUID `json:"mechanic_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// Validate checks the link endpoints.
func (tm *TicketMechanic) Validate() error {
	if tm.TicketID == uuid.Nil || tm.MechanicID == uuid.Nil {
		return ErrInvalidTicketData
	}
	return nil
}
