package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ngoa-long/tamquoc/backend/internal/services"
)

// StoryHandler serves the campaign map.
type StoryHandler struct {
	svc *services.StoryService
}

func (h *StoryHandler) Chapters(c *gin.Context) {
	chapters, err := h.svc.Chapters(c.Request.Context(), playerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapters": chapters})
}

func (h *StoryHandler) Chapter(c *gin.Context) {
	chapter, err := h.svc.Chapter(c.Request.Context(), playerID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapter": chapter})
}

func (h *StoryHandler) Stage(c *gin.Context) {
	stage, err := h.svc.Stage(c.Request.Context(), playerID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stage": stage})
}

func (h *StoryHandler) Progress(c *gin.Context) {
	progress, err := h.svc.Progress(c.Request.Context(), playerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
