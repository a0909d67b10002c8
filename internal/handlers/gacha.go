package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/services"
)

// GachaHandler serves banners and pulls.
type GachaHandler struct {
	svc *services.GachaService
}

func (h *GachaHandler) Banners(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"banners": h.svc.Banners(c.Request.Context())})
}

func (h *GachaHandler) Pity(c *gin.Context) {
	pity, err := h.svc.Pity(c.Request.Context(), playerID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pity": pity})
}

type pullRequest struct {
	BannerID string `json:"banner_id" binding:"required"`
	Count    int    `json:"count" binding:"required"`
}

func (h *GachaHandler) Pull(c *gin.Context) {
	var req pullRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	outcome, err := h.svc.Pull(c.Request.Context(), playerID(c), req.BannerID, req.Count)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *GachaHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.svc.History(c.Request.Context(), playerID(c), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}
