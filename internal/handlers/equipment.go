package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/services"
)

// EquipmentHandler serves the gear inventory.
type EquipmentHandler struct {
	svc *services.EquipmentService
}

func (h *EquipmentHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), playerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"equipment": items})
}

func (h *EquipmentHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	piece, err := h.svc.Get(c.Request.Context(), playerID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"equipment": piece})
}

func (h *EquipmentHandler) Enhance(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	outcome, err := h.svc.Enhance(c.Request.Context(), playerID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

type fuseRequest struct {
	EquipmentIDs []string `json:"equipment_ids" binding:"required"`
}

func (h *EquipmentHandler) Fuse(c *gin.Context) {
	var req fuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	ids := make([]uuid.UUID, 0, len(req.EquipmentIDs))
	for _, raw := range req.EquipmentIDs {
		id, err := parseBodyUUID(c, raw, "equipment_ids")
		if err != nil {
			return
		}
		ids = append(ids, id)
	}
	outcome, err := h.svc.Fuse(c.Request.Context(), playerID(c), ids)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
