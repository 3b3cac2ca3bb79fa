package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/delivery/http/middleware"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/usecase/ticket"
	"github.com/google/uuid"
)

// TicketService defines the ticket operations used by the handler
type TicketService interface {
	CreateTicket(ctx context.Context, req *ticket.CreateTicketRequest) (*domain.ServiceTicket, error)
	GetTicketByID(ctx context.Context, id uuid.UUID) (*domain.ServiceTicket, error)
	ListTickets(ctx context.Context, limit, offset int) ([]*domain.ServiceTicket, error)
	ListAllTickets(ctx context.Context) ([]*domain.ServiceTicket, error)
	GetTicketsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.ServiceTicket, error)
	BatchEditMechanics(ctx context.Context, ticketID uuid.UUID, req *ticket.UpdateTicketRequest) (*domain.ServiceTicket, error)
	AttachPart(ctx context.Context, ticketID uuid.UUID, req *ticket.AttachPartRequest) (*domain.TicketPart, error)
	DetachPart(ctx context.Context, ticketID uuid.UUID, req *ticket.DetachPartRequest) error
}

// TicketHandler handles service ticket requests
type TicketHandler struct {
	ticketService TicketService
	logger        logger.Logger
}

// NewTicketHandler creates a new handler
func NewTicketHandler(ticketService TicketService, logger logger.Logger) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		logger:        logger,
	}
}

// CreateTicket opens a service ticket, optionally with initial mechanics.
// Unknown mechanic ids reject the whole request and name every missing id.
// POST /service_tickets
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req ticket.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.ticketService.CreateTicket(r.Context(), &req)
	if err != nil {
		var missingErr *domain.MissingMechanicsError
		if errors.As(err, &missingErr) {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":       missingErr.Error(),
				"missing_ids": missingErr.MissingIDs,
			})
			return
		}
		if err == domain.ErrCustomerNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		if err == domain.ErrVINTaken {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		if err == domain.ErrInvalidTicketData {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create ticket", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to create ticket")
		return
	}

	respondSuccess(w, http.StatusCreated, t)
}

// ListTickets returns tickets, paginated or full
// GET /service_tickets
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	var (
		tickets []*domain.ServiceTicket
		err     error
	)

	if limit, offset, ok := parsePagination(r); ok {
		tickets, err = h.ticketService.ListTickets(r.Context(), limit, offset)
	} else {
		tickets, err = h.ticketService.ListAllTickets(r.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list tickets", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list tickets")
		return
	}

	respondSuccess(w, http.StatusOK, tickets)
}

// GetTicketByID returns a ticket with its mechanic set
// GET /service_tickets/{id}
func (h *TicketHandler) GetTicketByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	t, err := h.ticketService.GetTicketByID(r.Context(), id)
	if err != nil {
		if err == domain.ErrTicketNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to get ticket", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get ticket")
		return
	}

	respondSuccess(w, http.StatusOK, t)
}

// GetMyTickets returns the authenticated customer's tickets
// GET /service_tickets/my-tickets
func (h *TicketHandler) GetMyTickets(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "Authorization header required")
		return
	}

	tickets, err := h.ticketService.GetTicketsByCustomer(r.Context(), claims.SubjectID)
	if err != nil {
		h.logger.Error("Failed to get customer tickets", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get tickets")
		return
	}

	respondSuccess(w, http.StatusOK, tickets)
}

// EditMechanics applies a batch add/remove edit to a ticket's mechanic set.
// Both lists are required; omitting either is a validation error. Unknown
// mechanic ids fail the whole edit and every missing id is named.
// PUT /service_tickets/{id}
func (h *TicketHandler) EditMechanics(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	var req ticket.UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.ticketService.BatchEditMechanics(r.Context(), id, &req)
	if err != nil {
		var missingErr *domain.MissingMechanicsError
		if errors.As(err, &missingErr) {
			respondJSON(w, http.StatusNotFound, map[string]interface{}{
				"error":       missingErr.Error(),
				"missing_ids": missingErr.MissingIDs,
			})
			return
		}
		if err == domain.ErrTicketNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to edit ticket mechanics", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to edit ticket mechanics")
		return
	}

	respondSuccess(w, http.StatusOK, t)
}

// AttachPart attaches an inventory part to a ticket
// PUT /service_tickets/{id}/add-part
func (h *TicketHandler) AttachPart(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	var req ticket.AttachPartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	link, err := h.ticketService.AttachPart(r.Context(), id, &req)
	if err != nil {
		if err == domain.ErrTicketNotFound || err == domain.ErrPartNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		if err == domain.ErrPartAlreadyAttached {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		if err == domain.ErrInvalidQuantity {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to attach part", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to attach part")
		return
	}

	respondSuccess(w, http.StatusOK, link)
}

// DetachPart removes a part link from a ticket
// PUT /service_tickets/{id}/remove-part
func (h *TicketHandler) DetachPart(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	var req ticket.DetachPartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ticketService.DetachPart(r.Context(), id, &req); err != nil {
		if err == domain.ErrTicketNotFound || err == domain.ErrPartNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		if err == domain.ErrPartNotAttached {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to detach part", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to detach part")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Part removed from ticket",
	})
}
