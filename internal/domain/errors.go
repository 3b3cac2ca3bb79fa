package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Domain errors - used across all application layers

// Customer errors
var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrCustomerEmailTaken  = errors.New("email already associated with an account")
	ErrInvalidCustomerData = errors.New("invalid customer data")
)

// Mechanic errors
var (
	ErrMechanicNotFound    = errors.New("mechanic not found")
	ErrMechanicEmailTaken  = errors.New("email already associated with an account")
	ErrInvalidMechanicData = errors.New("invalid mechanic data")
	ErrMechanicNotAssigned = errors.New("mechanic is not assigned to this ticket")
)

// ServiceTicket errors
var (
	ErrTicketNotFound    = errors.New("service ticket not found")
	ErrVINTaken          = errors.New("VIN already associated with a service ticket")
	ErrInvalidTicketData = errors.New("invalid service ticket data")
)

// InventoryPart errors
var (
	ErrPartNotFound        = errors.New("inventory part not found")
	ErrPartNameTaken       = errors.New("part name already associated with an inventory item")
	ErrInvalidPartData     = errors.New("invalid inventory part data")
	ErrPartAlreadyAttached = errors.New("part already added to this ticket")
	ErrPartNotAttached     = errors.New("part is not attached to this ticket")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
)

// Authorization errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("missing token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
)

// General errors
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal server error")
)

// MissingMechanicsError reports mechanic ids that were requested for a ticket
// but do not exist in the store. Carries the full set difference so callers
// can surface every offending id in one response.
type MissingMechanicsError struct {
	MissingIDs []uuid.UUID
}

func (e *MissingMechanicsError) Error() string {
	ids := make([]string, 0, len(e.MissingIDs))
	for _, id := range e.MissingIDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("mechanics not found: %s", strings.Join(ids, ", "))
}
