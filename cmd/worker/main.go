package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/healthdost/kiosk-api/internal/config"
	"github.com/healthdost/kiosk-api/internal/repository/postgres"
	"github.com/healthdost/kiosk-api/pkg/logger"
	redisbroker "github.com/healthdost/kiosk-api/pkg/messaging/redis"
	"github.com/healthdost/kiosk-api/pkg/metrics"
	"github.com/healthdost/kiosk-api/pkg/worker"
)

// workerConfig comes entirely from the environment; the worker runs
// headless in containers with no config file mounted.
type workerConfig struct {
	DatabaseHost     string        `envconfig:"DB_HOST" default:"localhost"`
	DatabasePort     int           `envconfig:"DB_PORT" default:"5432"`
	DatabaseUser     string        `envconfig:"DB_USER" required:"true"`
	DatabasePassword string        `envconfig:"DB_PASSWORD" required:"true"`
	DatabaseName     string        `envconfig:"DB_NAME" required:"true"`
	DatabaseSSLMode  string        `envconfig:"DB_SSLMODE" default:"disable"`
	RedisURL         string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	BatchSize        int           `envconfig:"BATCH_SIZE" default:"50"`
	PollInterval     time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
	MaxRetries       int           `envconfig:"MAX_RETRIES" default:"3"`
	RetryDelay       time.Duration `envconfig:"RETRY_DELAY" default:"1m"`
	RetentionDays    int           `envconfig:"RETENTION_DAYS" default:"7"`
	MetricsPort      int           `envconfig:"METRICS_PORT" default:"9090"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
}

func main() {
	var cfg workerConfig
	if err := envconfig.Process("worker", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load worker configuration")
	}

	logger.Setup(logger.Config{Level: cfg.LogLevel})
	workerLog := logger.Named("outbox-worker")

	db, err := postgres.NewDB(config.DatabaseConfig{
		Host:     cfg.DatabaseHost,
		Port:     cfg.DatabasePort,
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Name:     cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redisbroker.NewBroker(redisbroker.Config{
		URL:          cfg.RedisURL,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     10,
	}, workerLog)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	processor, err := worker.NewOutboxProcessor(
		postgres.NewOutboxRepository(db),
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:     cfg.BatchSize,
			PollInterval:  cfg.PollInterval,
			MaxRetries:    cfg.MaxRetries,
			RetryDelay:    cfg.RetryDelay,
			RetentionDays: cfg.RetentionDays,
		},
		workerLog,
		metrics.New("kiosk_worker"),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create outbox processor")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", cfg.MetricsPort)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	go processor.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()
}
