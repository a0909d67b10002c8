package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/services"
)

// TeamHandler serves team composition.
type TeamHandler struct {
	svc *services.TeamService
}

func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.svc.List(c.Request.Context(), playerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

type createTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	team, err := h.svc.Create(c.Request.Context(), playerID(c), req.Name)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"team": team})
}

func (h *TeamHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	team, err := h.svc.Get(c.Request.Context(), playerID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

type updateTeamRequest struct {
	Name        *string `json:"name,omitempty"`
	FormationID *string `json:"formation_id,omitempty"`
}

func (h *TeamHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req updateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	team, err := h.svc.Update(c.Request.Context(), playerID(c), id, req.Name, req.FormationID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

func (h *TeamHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), playerID(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addMemberRequest struct {
	HeroID string `json:"hero_id" binding:"required"`
	X      *int   `json:"x" binding:"required"`
	Y      *int   `json:"y" binding:"required"`
}

func (h *TeamHandler) AddMember(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	heroID, err := parseBodyUUID(c, req.HeroID, "hero_id")
	if err != nil {
		return
	}
	team, err := h.svc.AddMember(c.Request.Context(), playerID(c), teamID, heroID, *req.X, *req.Y)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

type moveMemberRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

func (h *TeamHandler) MoveMember(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	heroID, ok := parseUUIDParam(c, "heroId")
	if !ok {
		return
	}
	var req moveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperrors.Validation("invalid request body"))
		return
	}
	team, err := h.svc.MoveMember(c.Request.Context(), playerID(c), teamID, heroID, *req.X, *req.Y)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

func (h *TeamHandler) Formations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"formations": h.svc.Formations()})
}

func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	heroID, ok := parseUUIDParam(c, "heroId")
	if !ok {
		return
	}
	team, err := h.svc.RemoveMember(c.Request.Context(), playerID(c), teamID, heroID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

func (h *TeamHandler) Power(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	power, err := h.svc.Power(c.Request.Context(), playerID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"power": power})
}
