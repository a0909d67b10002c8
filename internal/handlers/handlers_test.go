package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoa-long/tamquoc/backend/internal/auth"
	"github.com/ngoa-long/tamquoc/backend/internal/catalog"
	"github.com/ngoa-long/tamquoc/backend/internal/config"
	"github.com/ngoa-long/tamquoc/backend/internal/database"
	"github.com/ngoa-long/tamquoc/backend/internal/gacha"
	"github.com/ngoa-long/tamquoc/backend/internal/services"
	"github.com/ngoa-long/tamquoc/backend/internal/session"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenTest()
	require.NoError(t, err)
	cat := catalog.MustDefault()
	require.NoError(t, catalog.SeedDatabase(db, cat))

	tokens := auth.NewManager(config.AuthConfig{
		JWTSecret:      "test-secret",
		AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour,
		BcryptCost: 4,
	})
	gameCfg := config.GameConfig{
		StaminaRegenInterval: 5 * time.Minute,
		StaminaPerInterval:   1,
		BattleSessionTTL:     time.Hour,
	}

	players := services.NewPlayerService(db, gameCfg)
	story := services.NewStoryService(db, cat, players)
	svc := Services{
		Auth:      services.NewAuthService(db, tokens, cat),
		Players:   players,
		Heroes:    services.NewHeroService(db, cat),
		Teams:     services.NewTeamService(db, cat),
		Equipment: services.NewEquipmentService(db, cat, players),
		Mounts:    services.NewMountService(db, cat, players),
		Story:     story,
		Battles:   services.NewBattleService(db, cat, players, story, session.NewStore(time.Hour)),
		Gacha:     services.NewGachaService(db, cat, players, gacha.NewMemoryPityStore(), gacha.NewMemoryHistoryStore()),
	}

	r := gin.New()
	RegisterRoutes(r, svc, tokens)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginAndMe(t *testing.T) {
	r := newTestRouter(t)
	username := fmt.Sprintf("vien_thieu_%d", time.Now().UnixNano())

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		Tokens struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.Tokens.AccessToken)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/players/me", registered.Tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), username)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refresh_token": registered.Tokens.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/players/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/heroes", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	r := newTestRouter(t)
	username := fmt.Sprintf("tao_thao_%d", time.Now().UnixNano())

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": "sai_mat_khau",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGachaBannersListed(t *testing.T) {
	r := newTestRouter(t)
	username := fmt.Sprintf("ton_sach_%d", time.Now().UnixNano())

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))

	w = doJSON(t, r, http.MethodGet, "/api/v1/gacha/banners", registered.Tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "standard")
	assert.Contains(t, w.Body.String(), "limited_quan_vu")
}
