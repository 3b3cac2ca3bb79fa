package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/usecase/inventory"
	"github.com/google/uuid"
)

// InventoryService defines the inventory operations used by the handler
type InventoryService interface {
	CreatePart(ctx context.Context, req *inventory.CreatePartRequest) (*domain.InventoryPart, error)
	GetPartByID(ctx context.Context, id uuid.UUID) (*domain.InventoryPart, error)
	UpdatePart(ctx context.Context, id uuid.UUID, req *inventory.UpdatePartRequest) (*domain.InventoryPart, error)
	DeletePart(ctx context.Context, id uuid.UUID) error
	ListParts(ctx context.Context, limit, offset int) ([]*domain.InventoryPart, error)
	ListAllParts(ctx context.Context) ([]*domain.InventoryPart, error)
	SearchByPartName(ctx context.Context, partName string) (*domain.InventoryPart, error)
}

// InventoryHandler handles inventory part requests
type InventoryHandler struct {
	inventoryService InventoryService
	logger           logger.Logger
}

// NewInventoryHandler creates a new handler
func NewInventoryHandler(inventoryService InventoryService, logger logger.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// CreatePart adds a new part to the inventory
// POST /inventory
func (h *InventoryHandler) CreatePart(w http.ResponseWriter, r *http.Request) {
	var req inventory.CreatePartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.inventoryService.CreatePart(r.Context(), &req)
	if err != nil {
		if err == domain.ErrPartNameTaken {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		if err == domain.ErrInvalidPartData {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create part", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to create part")
		return
	}

	respondSuccess(w, http.StatusCreated, p)
}

// ListParts returns inventory parts, paginated or full
// GET /inventory
func (h *InventoryHandler) ListParts(w http.ResponseWriter, r *http.Request) {
	var (
		parts []*domain.InventoryPart
		err   error
	)

	if limit, offset, ok := parsePagination(r); ok {
		parts, err = h.inventoryService.ListParts(r.Context(), limit, offset)
	} else {
		parts, err = h.inventoryService.ListAllParts(r.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list parts", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list parts")
		return
	}

	respondSuccess(w, http.StatusOK, parts)
}

// GetPartByID returns a part by id
// GET /inventory/{id}
func (h *InventoryHandler) GetPartByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid part ID")
		return
	}

	p, err := h.inventoryService.GetPartByID(r.Context(), id)
	if err != nil {
		if err == domain.ErrPartNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to get part", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get part")
		return
	}

	respondSuccess(w, http.StatusOK, p)
}

// UpdatePart applies a partial update to a part
// PUT /inventory/{id}
func (h *InventoryHandler) UpdatePart(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid part ID")
		return
	}

	var req inventory.UpdatePartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.inventoryService.UpdatePart(r.Context(), id, &req)
	if err != nil {
		if err == domain.ErrPartNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		if err == domain.ErrPartNameTaken {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		if err == domain.ErrInvalidPartData {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to update part", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to update part")
		return
	}

	respondSuccess(w, http.StatusOK, p)
}

// DeletePart removes a part from the inventory
// DELETE /inventory/{id}
func (h *InventoryHandler) DeletePart(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid part ID")
		return
	}

	if err := h.inventoryService.DeletePart(r.Context(), id); err != nil {
		if err == domain.ErrPartNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to delete part", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete part")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Part %s deleted", id),
	})
}

// SearchParts returns the first part whose name contains the term.
// No match is a success with null data.
// GET /inventory/search?part_name=
func (h *InventoryHandler) SearchParts(w http.ResponseWriter, r *http.Request) {
	partName := r.URL.Query().Get("part_name")
	if partName == "" {
		respondError(w, http.StatusBadRequest, "part_name query parameter required")
		return
	}

	p, err := h.inventoryService.SearchByPartName(r.Context(), partName)
	if err != nil {
		if err == domain.ErrPartNotFound {
			respondSuccess(w, http.StatusOK, nil)
			return
		}
		h.logger.Error("Failed to search parts", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to search parts")
		return
	}

	respondSuccess(w, http.StatusOK, p)
}
