package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/usecase/auth"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/usecase/mechanic"
	"github.com/google/uuid"
)

// MechanicService defines the mechanic operations used by the handler
type MechanicService interface {
	CreateMechanic(ctx context.Context, req *mechanic.CreateMechanicRequest) (*domain.Mechanic, error)
	GetMechanicByID(ctx context.Context, id uuid.UUID) (*domain.Mechanic, error)
	UpdateMechanic(ctx context.Context, id uuid.UUID, req *mechanic.UpdateMechanicRequest) (*domain.Mechanic, error)
	DeleteMechanic(ctx context.Context, id uuid.UUID) error
	ListMechanics(ctx context.Context, limit, offset int) ([]*domain.Mechanic, error)
	ListAllMechanics(ctx context.Context) ([]*domain.Mechanic, error)
	PopularMechanics(ctx context.Context) ([]*domain.Mechanic, error)
	AssignToTicket(ctx context.Context, mechanicID, ticketID uuid.UUID) (bool, error)
	RemoveFromTicket(ctx context.Context, mechanicID, ticketID uuid.UUID) error
}

// MechanicHandler handles mechanic requests
type MechanicHandler struct {
	mechanicService MechanicService
	authService     AuthService
	logger          logger.Logger
}

// NewMechanicHandler creates a new handler
func NewMechanicHandler(mechanicService MechanicService, authService AuthService, logger logger.Logger) *MechanicHandler {
	return &MechanicHandler{
		mechanicService: mechanicService,
		authService:     authService,
		logger:          logger,
	}
}

// CreateMechanic registers a new mechanic
// POST /mechanics
func (h *MechanicHandler) CreateMechanic(w http.ResponseWriter, r *http.Request) {
	var req mechanic.CreateMechanicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.mechanicService.CreateMechanic(r.Context(), &req)
	if err != nil {
		if err == domain.ErrMechanicEmailTaken {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		if err == domain.ErrInvalidMechanicData {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create mechanic", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to create mechanic")
		return
	}

	respondSuccess(w, http.StatusCreated, m)
}

// ListMechanics returns mechanics, paginated or full
// GET /mechanics
func (h *MechanicHandler) ListMechanics(w http.ResponseWriter, r *http.Request) {
	var (
		mechanics []*domain.Mechanic
		err       error
	)

	if limit, offset, ok := parsePagination(r); ok {
		mechanics, err = h.mechanicService.ListMechanics(r.Context(), limit, offset)
	} else {
		mechanics, err = h.mechanicService.ListAllMechanics(r.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list mechanics", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list mechanics")
		return
	}

	respondSuccess(w, http.StatusOK, mechanics)
}

// GetMechanicByID returns a mechanic by id
// GET /mechanics/{id}
func (h *MechanicHandler) GetMechanicByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid mechanic ID")
		return
	}

	m, err := h.mechanicService.GetMechanicByID(r.Context(), id)
	if err != nil {
		if err == domain.ErrMechanicNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to get mechanic", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get mechanic")
		return
	}

	respondSuccess(w, http.StatusOK, m)
}

// UpdateMechanic applies a partial update to a mechanic
// PUT /mechanics/{id}
func (h *MechanicHandler) UpdateMechanic(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid mechanic ID")
		return
	}

	var req mechanic.UpdateMechanicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.mechanicService.UpdateMechanic(r.Context(), id, &req)
	if err != nil {
		if err == domain.ErrMechanicNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		if err == domain.ErrMechanicEmailTaken {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		if err == domain.ErrInvalidMechanicData {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to update mechanic", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to update mechanic")
		return
	}

	respondSuccess(w, http.StatusOK, m)
}

// DeleteMechanic removes a mechanic
// DELETE /mechanics/{id}
func (h *MechanicHandler) DeleteMechanic(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid mechanic ID")
		return
	}

	if err := h.mechanicService.DeleteMechanic(r.Context(), id); err != nil {
		if err == domain.ErrMechanicNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to delete mechanic", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete mechanic")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Mechanic %s deleted", id),
	})
}

// PopularMechanics returns all mechanics ordered by ticket count, busiest first
// GET /mechanics/popular
func (h *MechanicHandler) PopularMechanics(w http.ResponseWriter, r *http.Request) {
	mechanics, err := h.mechanicService.PopularMechanics(r.Context())
	if err != nil {
		h.logger.Error("Failed to rank mechanics", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to rank mechanics")
		return
	}

	respondSuccess(w, http.StatusOK, mechanics)
}

// AssignToTicket links a mechanic to a ticket. Assigning twice is not an
// error; the repeated call reports the link already exists.
// POST /mechanics/{id}/add-ticket/{ticket_id}
func (h *MechanicHandler) AssignToTicket(w http.ResponseWriter, r *http.Request) {
	mechanicID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid mechanic ID")
		return
	}
	ticketID, err := parseIDParam(r, "ticket_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	alreadyAssigned, err := h.mechanicService.AssignToTicket(r.Context(), mechanicID, ticketID)
	if err != nil {
		if err == domain.ErrMechanicNotFound || err == domain.ErrTicketNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to assign mechanic", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to assign mechanic")
		return
	}

	message := "Mechanic assigned to ticket"
	if alreadyAssigned {
		message = "Mechanic already assigned to ticket"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// RemoveFromTicket unlinks a mechanic from a ticket. The link must exist.
// DELETE /mechanics/{id}/remove-ticket/{ticket_id}
func (h *MechanicHandler) RemoveFromTicket(w http.ResponseWriter, r *http.Request) {
	mechanicID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid mechanic ID")
		return
	}
	ticketID, err := parseIDParam(r, "ticket_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	if err := h.mechanicService.RemoveFromTicket(r.Context(), mechanicID, ticketID); err != nil {
		if err == domain.ErrMechanicNotFound || err == domain.ErrTicketNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		if err == domain.ErrMechanicNotAssigned {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to remove mechanic", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to remove mechanic")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Mechanic removed from ticket",
	})
}

// Login authenticates a mechanic and returns a token
// POST /mechanics/login
func (h *MechanicHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authService.LoginMechanic(r.Context(), &req)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Error("Mechanic login failed", map[string]interface{}{
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
