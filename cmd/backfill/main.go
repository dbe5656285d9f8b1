// Command backfill fills missing county PM2.5 estimates so that every county
// in the reference places file has a value, then rewrites the PM2.5 dataset.
//
// Usage:
//
//	DATA_DIR=./data go run ./cmd/backfill
//
// See internal/config for the environment variables it reads.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	kafkaadapter "github.com/couchcryptid/pm25-backfill/internal/adapter/kafka"
	"github.com/couchcryptid/pm25-backfill/internal/adapter/csvfile"
	"github.com/couchcryptid/pm25-backfill/internal/config"
	"github.com/couchcryptid/pm25-backfill/internal/observability"
	"github.com/couchcryptid/pm25-backfill/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if code := run(ctx, cfg, logger, metrics); code != 0 {
		stop()
		os.Exit(code)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) int {
	loaders := []pipeline.Loader{csvfile.NewWriter(cfg.PM25Path, logger)}

	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		loaders = append(loaders, writer)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	}

	p := pipeline.New(
		csvfile.NewMeasurementReader(cfg.PM25Path, logger),
		csvfile.NewCountyReader(cfg.PlacesPath, logger),
		loaders,
		logger,
		metrics,
	)

	code := 0
	if _, err := p.Run(ctx); err != nil {
		logger.Error("backfill failed", "error", err, "pm25_path", cfg.PM25Path, "places_path", cfg.PlacesPath)
		code = 1
	}

	if cfg.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := observability.Push(pushCtx, cfg.PushgatewayURL, cfg.PushgatewayJob, metrics); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	return code
}
