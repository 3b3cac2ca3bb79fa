package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role tags the two kinds of authenticated principals the shop knows about.
// Every issued token carries exactly one of these.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleMechanic Role = "mechanic"
)

// Customer owns service tickets. Email is unique across customers.
type Customer struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // never returned in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks the customer fields required at persistence time.
func (c *Customer) Validate() error {
	if c.Email == "" {
		return ErrInvalidCustomerData
	}
	if c.Name == "" {
		return ErrInvalidCustomerData
	}
	return nil
}
