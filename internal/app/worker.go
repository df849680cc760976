package app

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/vjorihoxha/tiktak-vjori/internal/employee"
	"github.com/vjorihoxha/tiktak-vjori/internal/messaging/kafka"
	"github.com/vjorihoxha/tiktak-vjori/internal/messaging/kafka/producer"
	"github.com/vjorihoxha/tiktak-vjori/internal/provider"
	"github.com/vjorihoxha/tiktak-vjori/internal/shared/connection"
	"github.com/vjorihoxha/tiktak-vjori/internal/tracktik"

	"go.uber.org/zap"
)

// RunWorker hosts the two background loops: the outbox publisher and the
// periodic sweep that re-attempts TrackTik sync for pending records.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	if kafkaBroker := os.Getenv("KAFKA_BROKER"); kafkaBroker != "" {
		kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
		if err != nil {
			return err
		}
		defer kafkaWriter.Close()

		go producer.ProcessOutboxEvents(
			ctx,
			outboxRepo,
			kafkaWriter,
			logger,
			3*time.Second,
		)
	} else {
		logger.Warn("KAFKA_BROKER not set, outbox publisher disabled")
	}

	employeeRepo := employee.NewRepository(gormDB)
	mappers := employee.NewMapperRegistry(
		provider.NewProvider1Mapper(),
		provider.NewProvider2Mapper(),
	)
	trackTikClient := tracktik.NewClient(trackTikConfigFromEnv(), logger)
	employeeService := employee.NewServiceWithOutbox(
		sqlDB, employeeRepo, mappers, trackTikClient, outboxRepo, nil, logger,
	)

	go runSyncSweep(ctx, employeeService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func runSyncSweep(ctx context.Context, svc employee.Service, logger *zap.Logger) {
	interval := 5 * time.Minute
	if raw := os.Getenv("SYNC_SWEEP_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	limit := 0
	if raw := os.Getenv("SYNC_SWEEP_LIMIT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	log := logger.Named("sync.sweep")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("sync sweep started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("sync sweep stopped")
			return
		case <-ticker.C:
			synced, err := svc.SyncAllPending(ctx, limit)
			if err != nil {
				log.Error("sync sweep failed", zap.Error(err))
				continue
			}
			if synced > 0 {
				log.Info("sync sweep completed", zap.Int("synced", synced))
			}
		}
	}
}
