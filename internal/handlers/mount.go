package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/services"
)

// MountHandler serves the player's stable.
type MountHandler struct {
	svc *services.MountService
}

func (h *MountHandler) List(c *gin.Context) {
	mounts, err := h.svc.List(c.Request.Context(), playerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mounts": mounts})
}

func (h *MountHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	mount, err := h.svc.Get(c.Request.Context(), playerID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mount": mount})
}

func (h *MountHandler) Train(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	mount, err := h.svc.Train(c.Request.Context(), playerID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mount": mount})
}

func (h *MountHandler) Evolve(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	mount, err := h.svc.Evolve(c.Request.Context(), playerID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mount": mount})
}

type assignMountRequest struct {
	MountID string `json:"mount_id" binding:"required"`
}

// AssignRider mounts the hero named in the path on the given mount.
func (h *MountHandler) AssignRider(c *gin.Context) {
	heroID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req assignMountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	mountID, err := parseBodyUUID(c, req.MountID, "mount_id")
	if err != nil {
		return
	}
	hero, err := h.svc.Assign(c.Request.Context(), playerID(c), heroID, mountID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero": hero})
}

func (h *MountHandler) UnassignRider(c *gin.Context) {
	heroID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	hero, err := h.svc.Unassign(c.Request.Context(), playerID(c), heroID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero": hero})
}
