package http

import (
	"context"
	"testing"
	"time"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/delivery/http/middleware"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/jwt"
	"github.com/google/uuid"
)

// CreateTestCustomer creates a customer for tests
func CreateTestCustomer(id uuid.UUID, email string) *domain.Customer {
	return &domain.Customer{
		ID:    id,
		Name:  "Test Customer",
		Email: email,
		Phone: "555-0101",
	}
}

// CreateTestMechanic creates a mechanic for tests
func CreateTestMechanic(id uuid.UUID, email string) *domain.Mechanic {
	return &domain.Mechanic{
		ID:     id,
		Name:   "Test Mechanic",
		Email:  email,
		Phone:  "555-0102",
		Salary: 52000,
	}
}

// CreateTestTicket creates a service ticket for tests
func CreateTestTicket(id, customerID uuid.UUID, vin string) *domain.ServiceTicket {
	return &domain.ServiceTicket{
		ID:          id,
		VIN:         vin,
		ServiceDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "Brake pad replacement",
		CustomerID:  customerID,
	}
}

// CreateTestPart creates an inventory part for tests
func CreateTestPart(id uuid.UUID, partName string) *domain.InventoryPart {
	return &domain.InventoryPart{
		ID:       id,
		PartName: partName,
		Price:    49.99,
	}
}

// CreateAuthContext creates a request context carrying authenticated claims
func CreateAuthContext(t *testing.T, subjectID uuid.UUID, role domain.Role) context.Context {
	t.Helper()
	claims := &jwt.Claims{
		SubjectID: subjectID,
		Role:      role,
	}
	return context.WithValue(context.Background(), middleware.ClaimsKey, claims)
}

// AssertSuccess checks the success envelope
func AssertSuccess(t *testing.T, response map[string]interface{}) {
	t.Helper()
	success, ok := response["success"].(bool)
	if !ok || !success {
		t.Errorf("Expected success=true, got %v", response)
	}
}
