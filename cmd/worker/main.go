package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/wecare-vn/invoice-api/internal/app"
	"github.com/wecare-vn/invoice-api/internal/config"
	"github.com/wecare-vn/invoice-api/internal/dataset"
	"github.com/wecare-vn/invoice-api/internal/invoice"
	"github.com/wecare-vn/invoice-api/internal/lock"
	"github.com/wecare-vn/invoice-api/internal/obs"
	"github.com/wecare-vn/invoice-api/internal/repo"
)

func main() {
	cfg := config.MustLoad()

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("component", "worker").Logger()

	obs.MustRegisterDomainMetrics(envOrDefault("OBS_METRICS_NAMESPACE", "invoice"), nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := app.OpenDatabase(ctx, cfg.DatabaseURL, "invoice-worker")
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()

	redisClient, err := app.OpenRedis(ctx, cfg.RedisURL, false, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()

	store := &repo.Store{Pool: pool}
	svc := &invoice.Service{
		Store:       store,
		Cache:       invoice.NewCache(redisClient, cfg.InvoiceCacheTTL),
		Sessions:    dataset.NewSessions(),
		Log:         logger,
		MaxLines:    cfg.InvoiceMaxLines,
		PageSize:    cfg.InvoicePageSize,
		MaxAttempts: cfg.InvoiceMaxAttempts,
		Delay:       cfg.InvoiceLoadDelay,
		ResetGuard:  cfg.InvoiceResetGuard,
	}
	worker := &invoice.Worker{
		Svc:     svc,
		Lock:    lock.Locker{Client: redisClient},
		LockTTL: cfg.RecomputeLockTTL,
		Log:     logger,
	}

	asynqOpts, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url for task queue")
	}
	srv := asynq.NewServer(asynqOpts, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Logger:      asynqLogger{logger},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(invoice.TaskRecompute, worker.HandleRecompute)

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down worker")
		srv.Shutdown()
	}()

	logger.Info().Int("concurrency", cfg.WorkerConcurrency).Msg("worker starting")
	if err := srv.Run(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped with error")
	}
	logger.Info().Msg("worker shutdown complete")
}

// asynqLogger adapts zerolog to the asynq logging interface.
type asynqLogger struct {
	log zerolog.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.log.Fatal().Msg(fmt.Sprint(args...)) }

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		if trimmed := strings.TrimSpace(val); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
