package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/config"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/infra/mail"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/logger"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/notification"
)

func main() {

	cfg := config.Load()
	logger.Init(cfg.Env, cfg.LogLevel)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		asynq.Config{
			Queues:      map[string]int{notification.Queue: 1},
			Concurrency: 5,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				log.Error().
					Err(err).
					Str("type", task.Type()).
					Int("retry", retried).
					Int("max_retry", maxRetry).
					Msg("notification task failed")
			}),
		},
	)

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	mux := asynq.NewServeMux()
	notification.NewHandler(mailer).Register(mux)

	if err := srv.Start(mux); err != nil {
		log.Fatal().Err(err).Msg("failed to start worker")
	}
	log.Info().Str("queue", notification.Queue).Msg("worker running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	srv.Shutdown()
}
