package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/game"
	"github.com/ngoa-long/tamquoc/backend/internal/services"
)

// HeroHandler serves the player's hero roster and progression.
type HeroHandler struct {
	svc *services.HeroService
}

func (h *HeroHandler) List(c *gin.Context) {
	filter := services.HeroFilter{
		Element: c.Query("element"),
	}
	if raw := c.Query("rarity"); raw != "" {
		rarity, err := strconv.Atoi(raw)
		if err != nil {
			respondErr(c, apperrors.Validation("invalid rarity %q", raw))
			return
		}
		filter.Rarity = rarity
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))

	list, err := h.svc.List(c.Request.Context(), playerID(c), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *HeroHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	hero, err := h.svc.Get(c.Request.Context(), playerID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero": hero})
}

type levelUpRequest struct {
	ExpItems int `json:"exp_items" binding:"required"`
}

func (h *HeroHandler) LevelUp(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req levelUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	outcome, err := h.svc.LevelUp(c.Request.Context(), playerID(c), id, req.ExpItems)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *HeroHandler) Ascend(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	hero, err := h.svc.Ascend(c.Request.Context(), playerID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero": hero})
}

func (h *HeroHandler) Awaken(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	hero, err := h.svc.Awaken(c.Request.Context(), playerID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero": hero})
}

type equipRequest struct {
	EquipmentID string `json:"equipment_id" binding:"required"`
	Slot        string `json:"slot" binding:"required"`
}

func (h *HeroHandler) Equip(c *gin.Context) {
	heroID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req equipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	equipmentID, err := parseBodyUUID(c, req.EquipmentID, "equipment_id")
	if err != nil {
		return
	}
	hero, err := h.svc.Equip(c.Request.Context(), playerID(c), heroID, equipmentID, game.EquipmentType(req.Slot))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero": hero})
}

type unequipRequest struct {
	Slot string `json:"slot" binding:"required"`
}

func (h *HeroHandler) Unequip(c *gin.Context) {
	heroID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req unequipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	hero, err := h.svc.Unequip(c.Request.Context(), playerID(c), heroID, game.EquipmentType(req.Slot))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero": hero})
}
