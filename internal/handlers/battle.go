package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/services"
)

// BattleHandler serves the battle loop.
type BattleHandler struct {
	svc *services.BattleService
}

type startBattleRequest struct {
	TeamID  string `json:"team_id" binding:"required"`
	StageID string `json:"stage_id" binding:"required"`
}

func (h *BattleHandler) Start(c *gin.Context) {
	var req startBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	teamID, err := parseBodyUUID(c, req.TeamID, "team_id")
	if err != nil {
		return
	}
	snap, err := h.svc.Start(c.Request.Context(), playerID(c), teamID, req.StageID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"battle": snap})
}

func (h *BattleHandler) State(c *gin.Context) {
	snap, err := h.svc.State(c.Request.Context(), playerID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"battle": snap})
}

func (h *BattleHandler) Active(c *gin.Context) {
	snap, err := h.svc.Active(c.Request.Context(), playerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"battle": snap})
}

func (h *BattleHandler) Act(c *gin.Context) {
	var req services.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	outcome, err := h.svc.Act(c.Request.Context(), playerID(c), c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *BattleHandler) Retreat(c *gin.Context) {
	outcome, err := h.svc.Retreat(c.Request.Context(), playerID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *BattleHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := h.svc.History(c.Request.Context(), playerID(c), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"battles": records})
}
