package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"disaster-watch/internal/config"
	"disaster-watch/internal/hashing"
	apphttp "disaster-watch/internal/http"
	"disaster-watch/internal/realtime"
	"disaster-watch/internal/repository/sqlite"
	"disaster-watch/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	identityRepo := sqlite.NewIdentityRepository(db)
	if err := identityRepo.Init(ctx); err != nil {
		logger.Fatalf("init identity repository: %v", err)
	}

	hasher := hashing.NewPool(cfg.Hash.Cost, cfg.Hash.MaxConcurrent)
	registry := service.NewRegistry(identityRepo, hasher)

	// a failed seed aborts further seeding but not the server; requests
	// report storage failures on their own
	if err := registry.Seed(ctx); err != nil {
		logger.Errorf("seed identities: %v", err)
	}

	authService := service.NewAuthService(registry)
	hub := realtime.NewHub(logger, cfg.CORS.Origin)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(authService, hub, cfg.CORS.Origin)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	hub.Shutdown()

	logger.Info("bye")
}
