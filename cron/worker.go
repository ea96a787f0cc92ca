package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/Gidy30B/project02-sub000/config"
	"github.com/Gidy30B/project02-sub000/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt points asynq at the queue database.
func QueueRedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// RunAppointmentWorker consumes appointment events until ctx is cancelled.
func RunAppointmentWorker(ctx context.Context, cfg config.Config, h *tasks.AppointmentHandlers, logger *zap.Logger) error {
	concurrency := cfg.WorkerConcurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	srv := asynq.NewServer(
		QueueRedisOpt(cfg),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)
	mux := tasks.NewServeMux(h)

	go monitorRedisConnection(ctx, cfg, logger)

	logger.Info("Starting appointment worker...", zap.Int("concurrency", concurrency))
	const maxAttempts = 5
	for attempts := 1; ; attempts++ {
		err := srv.Start(mux)
		if err == nil {
			break
		}
		logger.Warn("Failed to start appointment worker",
			zap.Int("attempt", attempts),
			zap.Int("maxAttempts", maxAttempts),
			zap.Error(err))
		if attempts == maxAttempts {
			return fmt.Errorf("appointment worker: giving up after %d attempts: %w", maxAttempts, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempts*2) * time.Second):
		}
	}

	<-ctx.Done()
	logger.Info("Appointment worker shutting down...")
	srv.Shutdown()
	return nil
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, cfg config.Config, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
