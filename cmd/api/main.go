package main

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/carteapp/carte-backend/config"
	"github.com/carteapp/carte-backend/internal/attachments/blob"
	"github.com/carteapp/carte-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	deps := bootstrap.RouterDeps{
		ServiceName: "carte-backend",
		Cfg:         cfg,
		Log:         logger,
		RDB:         rdb,
		Blobs:       blob.NewStore(cfg.Upload.BlobTTL),
	}

	// The user directory needs Postgres; everything else runs without it.
	if cfg.DB.DSN != "" {
		pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.DB.DSN})
		if err != nil {
			logger.Fatal("db", zap.Error(err))
		}
		defer pool.Close()
		deps.DB = pool
	} else {
		logger.Info("DB_DSN not set, users routes disabled")
	}

	// Uploaded blobs are page-lifetime artifacts; sweep stale ones.
	janitor := cron.New()
	if _, err := janitor.AddFunc("@every 10m", func() {
		if n := deps.Blobs.Sweep(); n > 0 {
			logger.Info("swept stale attachment blobs", zap.Int("count", n))
		}
	}); err != nil {
		logger.Fatal("cron", zap.Error(err))
	}
	janitor.Start()
	defer janitor.Stop()

	router, err := bootstrap.BuildRouter(deps)
	if err != nil {
		logger.Fatal("router", zap.Error(err))
	}

	logger.Info("listening", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
