package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/BruksfildServices01/ironpeak-gym/internal/audit"
	"github.com/BruksfildServices01/ironpeak-gym/internal/config"
	dbpkg "github.com/BruksfildServices01/ironpeak-gym/internal/db"
	"github.com/BruksfildServices01/ironpeak-gym/internal/logger"
	"github.com/BruksfildServices01/ironpeak-gym/internal/media"
	"github.com/BruksfildServices01/ironpeak-gym/internal/payments"
	"github.com/BruksfildServices01/ironpeak-gym/internal/routes"
	"github.com/BruksfildServices01/ironpeak-gym/internal/timezone"
	"github.com/BruksfildServices01/ironpeak-gym/internal/validators"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	logger.Info("starting ironpeak api")

	if !timezone.IsValid(cfg.Timezone) {
		logger.Warn("unknown gym timezone, using default", "timezone", cfg.Timezone, "default", timezone.DefaultTimezone)
		cfg.Timezone = timezone.DefaultTimezone
	}

	if err := validators.RegisterBindings(); err != nil {
		logger.Fatal("failed to register validators", "error", err)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Fatal("failed to open database", "error", err)
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("database ready")

	auditDispatcher := audit.NewDispatcher(audit.NewGormWriter(db))
	defer auditDispatcher.Close()

	deps := routes.Deps{
		DB:     db,
		Config: cfg,
		Audit:  auditDispatcher,
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// limiter fails open, so a missing Redis degrades rather than blocks
			logger.Warn("redis unreachable", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()

		deps.Redis = rdb
	}

	if cfg.PaymentsEnabled() {
		gw, err := payments.NewMercadoPago(cfg.MPAccessToken)
		if err != nil {
			logger.Fatal("failed to configure payments", "error", err)
		}
		deps.Gateway = gw
	}

	if cfg.StorageEnabled() {
		deps.Uploader = media.NewUploader(media.NewS3Store(media.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKeyID:   cfg.S3AccessKeyID,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		}))
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = media.MaxUploadBytes

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("received signal", "signal", s.String())
	case err := <-serverErr:
		logger.Error("server error", "error", err)
	}

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}
