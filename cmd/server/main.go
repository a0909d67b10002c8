// Command server runs the game API.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ngoa-long/tamquoc/backend/internal/auth"
	"github.com/ngoa-long/tamquoc/backend/internal/catalog"
	"github.com/ngoa-long/tamquoc/backend/internal/config"
	"github.com/ngoa-long/tamquoc/backend/internal/database"
	"github.com/ngoa-long/tamquoc/backend/internal/gacha"
	"github.com/ngoa-long/tamquoc/backend/internal/handlers"
	"github.com/ngoa-long/tamquoc/backend/internal/services"
	"github.com/ngoa-long/tamquoc/backend/internal/session"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cat, err := catalog.Default()
	if err != nil {
		log.Fatalf("build catalog: %v", err)
	}
	if err := catalog.SeedDatabase(db, cat); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}

	var (
		pityStore    gacha.PityStore
		historyStore gacha.HistoryStore
	)
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("ping redis: %v", err)
		}
		pityStore = gacha.NewRedisPityStore(client)
		historyStore = gacha.NewRedisHistoryStore(client)
	} else {
		pityStore = services.NewDBPityStore(db)
		historyStore = gacha.NewMemoryHistoryStore()
	}

	tokens := auth.NewManager(cfg.Auth)
	sessions := session.NewStore(cfg.Game.BattleSessionTTL)

	players := services.NewPlayerService(db, cfg.Game)
	story := services.NewStoryService(db, cat, players)
	svc := handlers.Services{
		Auth:      services.NewAuthService(db, tokens, cat),
		Players:   players,
		Heroes:    services.NewHeroService(db, cat),
		Teams:     services.NewTeamService(db, cat),
		Equipment: services.NewEquipmentService(db, cat, players),
		Mounts:    services.NewMountService(db, cat, players),
		Story:     story,
		Battles:   services.NewBattleService(db, cat, players, story, sessions),
		Gacha:     services.NewGachaService(db, cat, players, pityStore, historyStore),
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if cfg.Server.RateLimitRPS > 0 {
		r.Use(handlers.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))
	}
	handlers.RegisterRoutes(r, svc, tokens)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := sessions.Sweep(); n > 0 {
					log.Printf("evicted %d expired battle sessions", n)
				}
			case <-sweepDone:
				return
			}
		}
	}()

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")
	close(sweepDone)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
