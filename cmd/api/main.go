package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/config"
	dbpkg "github.com/BruksfildServices01/shop-api/internal/db"
	"github.com/BruksfildServices01/shop-api/internal/logging"
	"github.com/BruksfildServices01/shop-api/internal/payment"
	"github.com/BruksfildServices01/shop-api/internal/routes"
	"github.com/BruksfildServices01/shop-api/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🗄️ DATABASE
	// ======================================================
	db, err := dbpkg.Open(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database")
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			log.WithError(err).Warn("close database")
		}
	}()

	deps := routes.Deps{DB: db, Config: cfg, Log: log}

	// ======================================================
	// ⚡ CACHE
	// ======================================================
	if cfg.RedisURL != "" {
		client, err := cache.Dial(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, catalog cache disabled")
		} else {
			defer client.Close()
			deps.Catalog = cache.NewRedis(client, cfg.CacheTTL, log)
		}
	}

	// ======================================================
	// 🖼️ IMAGES
	// ======================================================
	if cfg.ImagesEnabled() {
		deps.Uploader = storage.NewS3(
			storage.NewS3Client(cfg),
			cfg.S3Bucket,
			cfg.S3Region,
			cfg.S3PublicURL,
		)
	} else {
		log.Info("S3_BUCKET not set, image uploads disabled")
	}

	// ======================================================
	// 💳 PAYMENTS
	// ======================================================
	deps.Payments, err = payment.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("payment provider")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes.NewEngine(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown")
	}
}
