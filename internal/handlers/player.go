package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/services"
)

// PlayerHandler serves the authenticated player's profile and wallet.
type PlayerHandler struct {
	svc *services.PlayerService
}

func (h *PlayerHandler) Me(c *gin.Context) {
	player, err := h.svc.Get(c.Request.Context(), playerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"player": player})
}

func (h *PlayerHandler) Update(c *gin.Context) {
	var req services.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	player, err := h.svc.UpdateProfile(c.Request.Context(), playerID(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"player": player})
}

func (h *PlayerHandler) Resources(c *gin.Context) {
	resources, err := h.svc.GetResources(c.Request.Context(), playerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

func (h *PlayerHandler) Statistics(c *gin.Context) {
	stats, err := h.svc.GetStatistics(c.Request.Context(), playerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}
