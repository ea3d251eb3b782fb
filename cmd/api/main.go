package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nats-io/nats.go"

	"github.com/unaigarro/mapstamp/internal/adapters/googlefetch"
	"github.com/unaigarro/mapstamp/internal/adapters/http"
	natsadapter "github.com/unaigarro/mapstamp/internal/adapters/nats"
	"github.com/unaigarro/mapstamp/internal/adapters/postgres"
	"github.com/unaigarro/mapstamp/internal/adapters/valkey"
	"github.com/unaigarro/mapstamp/internal/core/ports"
	"github.com/unaigarro/mapstamp/internal/core/usecases"
	"github.com/unaigarro/mapstamp/internal/pkg/config"
	"github.com/unaigarro/mapstamp/internal/pkg/logging"
	"github.com/unaigarro/mapstamp/internal/pkg/metrics"
	"github.com/unaigarro/mapstamp/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("mapstamp-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("mapstamp-api", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Pool gauges for Prometheus
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			case <-ctx.Done():
				return
			}
		}
	}()

	// Cache. Assign the interface only on success: a typed-nil
	// *valkey.Cache inside a non-nil interface would defeat the
	// nil guards in the services.
	var cache *valkey.Cache
	var cacheSvc ports.CacheService
	if c, err := valkey.New(cfg.Valkey.Addr); err != nil {
		slog.Warn("valkey unavailable, settings served from postgres", "error", err)
	} else {
		defer c.Close()
		cache = c
		cacheSvc = c
	}

	// NATS. Same rule as the cache.
	var eventsSvc ports.EventPublisher
	if p, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, snapshot requests disabled", "error", err)
	} else {
		defer p.Close()
		eventsSvc = p
	}

	// Raw NATS connection for WebSocket relay
	var natsConn *nats.Conn
	if nc, err := natsadapter.RawConn(cfg.NATS.URL); err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	} else {
		natsConn = nc
	}

	// Outbound fetcher for key validation probes
	fetcher := googlefetch.New(googlefetch.Options{
		Timeout:    time.Duration(cfg.Fetcher.Timeout) * time.Second,
		RatePerSec: cfg.Fetcher.RatePerSec,
		Burst:      cfg.Fetcher.Burst,
		MaxRetries: cfg.Fetcher.MaxRetries,
		UserAgent:  cfg.Fetcher.UserAgent,
	})

	// Repos
	settingRepo := postgres.NewSettingRepo(db)
	snapshotRepo := postgres.NewSnapshotRepo(db)

	// Use cases. The API only enqueues snapshot work; downloading and
	// writing to the media library happens in the snapshotd worker.
	settingSvc := usecases.NewSettingService(settingRepo, cacheSvc)
	mapSvc := usecases.NewMapService(settingSvc, fetcher)
	snapshotSvc := usecases.NewSnapshotService(snapshotRepo, nil, fetcher, eventsSvc)

	deps := &http.Dependencies{
		Maps:      mapSvc,
		Settings:  settingSvc,
		Snapshots: snapshotSvc,
		NATS:      natsConn,
		DB:        db,
		Cache:     cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Mapstamp API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
