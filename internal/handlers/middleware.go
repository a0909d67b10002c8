package handlers

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/auth"
)

// Context key for the authenticated player id.
const ctxPlayerID = "player_id"

// RequireAuth verifies the bearer access token and stores the player id
// on the context.
func RequireAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondErr(c, apperrors.Unauthorized("missing bearer token"))
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			msg := "invalid access token"
			if err == auth.ErrTokenExpired {
				msg = "access token expired"
			}
			respondErr(c, apperrors.Unauthorized(msg))
			c.Abort()
			return
		}

		id, err := uuid.Parse(claims.PlayerID)
		if err != nil {
			respondErr(c, apperrors.Unauthorized("invalid access token"))
			c.Abort()
			return
		}
		c.Set(ctxPlayerID, id)
		c.Next()
	}
}

// RateLimit enforces a per-client token bucket keyed by client IP.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[key] = l
		}
		return l
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			appErr := apperrors.New(apperrors.CodeRateLimited, "too many requests", http.StatusTooManyRequests)
			c.JSON(appErr.Status, gin.H{"error": appErr})
			c.Abort()
			return
		}
		c.Next()
	}
}
