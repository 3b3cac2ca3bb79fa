package domain

import (
	"time"

	"github.com/google/uuid"
)

// TicketPart links a service ticket and an inventory part (many-to-many).
// Unlike TicketMechanic this is not a pure association: it carries the
// quantity of the part used on the ticket. At most one row per (ticket, part).
type TicketPart struct {
	TicketID uuid.UUID `json:"ticket_id"`
	PartID   uuid.UUID `json:"part_id"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`

	// Related data, filled on demand
	Part *InventoryPart `json:"part,omitempty"`
}

// Validate checks the link endpoints and the quantity invariant.
func (tp *TicketPart) Validate() error {
	if tp.TicketID == uuid.Nil || tp.PartID == uuid.Nil {
		return ErrInvalidPartData
	}
	if tp.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}
