package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/delivery/http/middleware"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/usecase/auth"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/usecase/customer"
	"github.com/google/uuid"
)

// AuthService defines the login operations used by the resource handlers
type AuthService interface {
	LoginCustomer(ctx context.Context, req *auth.LoginRequest) (string, error)
	LoginMechanic(ctx context.Context, req *auth.LoginRequest) (string, error)
}

// CustomerService defines the customer operations used by the handler
type CustomerService interface {
	CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req *customer.UpdateCustomerRequest) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	ListCustomers(ctx context.Context, limit, offset int) ([]*domain.Customer, error)
	ListAllCustomers(ctx context.Context) ([]*domain.Customer, error)
	SearchByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

// CustomerHandler handles customer requests
type CustomerHandler struct {
	customerService CustomerService
	authService     AuthService
	logger          logger.Logger
}

// NewCustomerHandler creates a new handler
func NewCustomerHandler(customerService CustomerService, authService AuthService, logger logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		authService:     authService,
		logger:          logger,
	}
}

// CreateCustomer registers a new customer
// POST /customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customer.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.customerService.CreateCustomer(r.Context(), &req)
	if err != nil {
		if err == domain.ErrCustomerEmailTaken {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		if err == domain.ErrInvalidCustomerData {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create customer", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	respondSuccess(w, http.StatusCreated, c)
}

// ListCustomers returns customers, paginated when both page and per_page
// parse as positive integers and the full collection otherwise
// GET /customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	var (
		customers []*domain.Customer
		err       error
	)

	if limit, offset, ok := parsePagination(r); ok {
		customers, err = h.customerService.ListCustomers(r.Context(), limit, offset)
	} else {
		customers, err = h.customerService.ListAllCustomers(r.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list customers", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list customers")
		return
	}

	respondSuccess(w, http.StatusOK, customers)
}

// GetCustomerByID returns a customer by id
// GET /customers/{id}
func (h *CustomerHandler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	c, err := h.customerService.GetCustomerByID(r.Context(), id)
	if err != nil {
		if err == domain.ErrCustomerNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to get customer", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get customer")
		return
	}

	respondSuccess(w, http.StatusOK, c)
}

// UpdateCustomer applies a partial update to the authenticated customer
// PUT /customers
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Authorization header required")
		return
	}

	var req customer.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.customerService.UpdateCustomer(r.Context(), claims.SubjectID, &req)
	if err != nil {
		if err == domain.ErrCustomerNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		if err == domain.ErrCustomerEmailTaken {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		if err == domain.ErrInvalidCustomerData {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to update customer", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	respondSuccess(w, http.StatusOK, c)
}

// DeleteCustomer removes the authenticated customer's account
// DELETE /customers
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Authorization header required")
		return
	}

	if err := h.customerService.DeleteCustomer(r.Context(), claims.SubjectID); err != nil {
		if err == domain.ErrCustomerNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to delete customer", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Customer %s deleted", claims.SubjectID),
	})
}

// SearchCustomers returns the first customer whose email contains the term.
// No match is a success with null data, not a 404.
// GET /customers/search?email=
func (h *CustomerHandler) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "email query parameter required")
		return
	}

	c, err := h.customerService.SearchByEmail(r.Context(), email)
	if err != nil {
		if err == domain.ErrCustomerNotFound {
			respondSuccess(w, http.StatusOK, nil)
			return
		}
		h.logger.Error("Failed to search customers", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to search customers")
		return
	}

	respondSuccess(w, http.StatusOK, c)
}

// Login authenticates a customer and returns a token
// POST /customers/login
func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authService.LoginCustomer(r.Context(), &req)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Error("Customer login failed", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Successfully logged in",
		"token":   token,
	})
}
