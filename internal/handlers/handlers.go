// Package handlers exposes the HTTP API. Handlers parse and validate
// the request shape, delegate to the services, and render the shared
// error envelope; no game rules live here.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/auth"
	"github.com/ngoa-long/tamquoc/backend/internal/services"
)

// Services bundles the service layer for route registration.
type Services struct {
	Auth      *services.AuthService
	Players   *services.PlayerService
	Heroes    *services.HeroService
	Teams     *services.TeamService
	Equipment *services.EquipmentService
	Mounts    *services.MountService
	Story     *services.StoryService
	Battles   *services.BattleService
	Gacha     *services.GachaService
}

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(r *gin.Engine, svc Services, tokens *auth.Manager) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	authH := &AuthHandler{svc: svc.Auth}
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/refresh", authH.Refresh)

	protected := api.Group("")
	protected.Use(RequireAuth(tokens))

	playerH := &PlayerHandler{svc: svc.Players}
	protected.GET("/players/me", playerH.Me)
	protected.PATCH("/players/me", playerH.Update)
	protected.GET("/players/me/resources", playerH.Resources)
	protected.GET("/players/me/statistics", playerH.Statistics)

	heroH := &HeroHandler{svc: svc.Heroes}
	protected.GET("/heroes", heroH.List)
	protected.GET("/heroes/:id", heroH.Get)
	protected.POST("/heroes/:id/level-up", heroH.LevelUp)
	protected.POST("/heroes/:id/ascend", heroH.Ascend)
	protected.POST("/heroes/:id/awaken", heroH.Awaken)
	protected.POST("/heroes/:id/equip", heroH.Equip)
	protected.POST("/heroes/:id/unequip", heroH.Unequip)

	teamH := &TeamHandler{svc: svc.Teams}
	protected.GET("/teams", teamH.List)
	protected.POST("/teams", teamH.Create)
	protected.GET("/teams/:id", teamH.Get)
	protected.PATCH("/teams/:id", teamH.Update)
	protected.DELETE("/teams/:id", teamH.Delete)
	protected.POST("/teams/:id/members", teamH.AddMember)
	protected.PATCH("/teams/:id/members/:heroId", teamH.MoveMember)
	protected.DELETE("/teams/:id/members/:heroId", teamH.RemoveMember)
	protected.GET("/teams/:id/power", teamH.Power)
	protected.GET("/formations", teamH.Formations)

	equipH := &EquipmentHandler{svc: svc.Equipment}
	protected.GET("/equipment", equipH.List)
	protected.GET("/equipment/:id", equipH.Get)
	protected.POST("/equipment/:id/enhance", equipH.Enhance)
	protected.POST("/equipment/fuse", equipH.Fuse)

	mountH := &MountHandler{svc: svc.Mounts}
	protected.GET("/mounts", mountH.List)
	protected.GET("/mounts/:id", mountH.Get)
	protected.POST("/mounts/:id/train", mountH.Train)
	protected.POST("/mounts/:id/evolve", mountH.Evolve)
	protected.POST("/heroes/:id/mount", mountH.AssignRider)
	protected.POST("/heroes/:id/dismount", mountH.UnassignRider)

	storyH := &StoryHandler{svc: svc.Story}
	protected.GET("/story/chapters", storyH.Chapters)
	protected.GET("/story/chapters/:id", storyH.Chapter)
	protected.GET("/story/stages/:id", storyH.Stage)
	protected.GET("/story/progress", storyH.Progress)

	battleH := &BattleHandler{svc: svc.Battles}
	protected.POST("/battles", battleH.Start)
	protected.GET("/battles/active", battleH.Active)
	protected.GET("/battles/history", battleH.History)
	protected.GET("/battles/:id", battleH.State)
	protected.POST("/battles/:id/actions", battleH.Act)
	protected.POST("/battles/:id/retreat", battleH.Retreat)

	gachaH := &GachaHandler{svc: svc.Gacha}
	protected.GET("/gacha/banners", gachaH.Banners)
	protected.GET("/gacha/banners/:id/pity", gachaH.Pity)
	protected.POST("/gacha/pull", gachaH.Pull)
	protected.GET("/gacha/history", gachaH.History)
}

// respondErr renders any error through the shared envelope.
func respondErr(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	c.JSON(appErr.Status, gin.H{"error": appErr})
}

// playerID returns the authenticated player's id set by RequireAuth.
func playerID(c *gin.Context) uuid.UUID {
	return c.MustGet(ctxPlayerID).(uuid.UUID)
}

// parseBodyUUID validates a uuid carried in a request body, rendering
// the error itself.
func parseBodyUUID(c *gin.Context, raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondErr(c, apperrors.Validation("invalid %s %q", field, raw))
		return uuid.Nil, err
	}
	return id, nil
}

// parseUUIDParam validates a uuid path parameter, rendering the error
// itself. The bool reports success.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondErr(c, apperrors.Validation("invalid %s %q", name, c.Param(name)))
		return uuid.Nil, false
	}
	return id, true
}
