package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unaigarro/mapstamp/internal/adapters/googlefetch"
	"github.com/unaigarro/mapstamp/internal/adapters/media"
	natsadapter "github.com/unaigarro/mapstamp/internal/adapters/nats"
	"github.com/unaigarro/mapstamp/internal/adapters/postgres"
	"github.com/unaigarro/mapstamp/internal/core/domain"
	"github.com/unaigarro/mapstamp/internal/core/usecases"
	"github.com/unaigarro/mapstamp/internal/pkg/config"
	"github.com/unaigarro/mapstamp/internal/pkg/logging"
	"github.com/unaigarro/mapstamp/internal/pkg/metrics"
	"github.com/unaigarro/mapstamp/internal/pkg/telemetry"
)

// snapshotd consumes queued snapshot requests, downloads the map image,
// and files it into the media library.
func main() {
	cfg, err := config.Load("mapstamp-snapshotd")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("mapstamp-snapshotd", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, "mapstamp-snapshotd", cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	library, err := media.New(cfg.Media.RootDir)
	if err != nil {
		log.Fatalf("media library: %v", err)
	}

	fetcher := googlefetch.New(googlefetch.Options{
		Timeout:    time.Duration(cfg.Fetcher.Timeout) * time.Second,
		RatePerSec: cfg.Fetcher.RatePerSec,
		Burst:      cfg.Fetcher.Burst,
		MaxRetries: cfg.Fetcher.MaxRetries,
		UserAgent:  cfg.Fetcher.UserAgent,
	})

	events, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats publisher: %v", err)
	}
	defer events.Close()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats subscriber: %v", err)
	}
	defer sub.Close()

	snapshotRepo := postgres.NewSnapshotRepo(db)
	snapshotSvc := usecases.NewSnapshotService(snapshotRepo, library, fetcher, events)

	err = sub.SubscribeSnapshotRequests(ctx, func(ctx context.Context, req *domain.SnapshotRequest) error {
		snap, err := snapshotSvc.Process(ctx, req)
		if err != nil {
			metrics.SnapshotFailures.WithLabelValues("process").Inc()
			slog.Error("snapshot processing failed", "url", req.URL, "error", err)
			return err
		}
		metrics.SnapshotsStored.Inc()
		slog.Info("snapshot stored",
			"id", snap.ID,
			"path", snap.Path,
			"bytes", snap.SizeBytes,
		)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	slog.Info("snapshot worker started", "media_root", cfg.Media.RootDir)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received", "signal", sig.String())
	cancel()
	slog.Info("worker stopped")
}
