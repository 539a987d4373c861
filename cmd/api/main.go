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
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/cache"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/tattoo-scheduler/internal/db"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/logger"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/notification"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/ratelimit"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/routes"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/tattoo-scheduler/internal/usecase/appointment"
)

func main() {

	cfg := config.Load()
	logger.Init(cfg.Env, cfg.LogLevel)
	timezone.SetDefault(cfg.DefaultTimezone)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg)

	// Redis backs the rate limiter and the notification queue. The API still
	// serves when it is down: the limiter fails open and enqueue errors are
	// logged by the booking flow.
	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	connectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Connect(connectCtx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable at startup")
	}
	cancel()
	defer redisClient.Close()

	var notifier ucAppointment.Notifier = notification.Discard{}
	if cfg.NotificationsEnabled {
		queue := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer queue.Close()
		notifier = notification.NewPublisher(queue)
	} else {
		log.Warn().Msg("notifications disabled")
	}

	payments, err := payment.NewMercadoPago(cfg.MPAccessToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure payments")
	}

	s3cfg := storage.S3Config{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	}
	processor := storage.NewImageProcessor()
	images := storage.NewReferenceImageStore(storage.NewS3Client(s3cfg), processor, s3cfg)

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	r := gin.New()

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Audit:    auditDispatcher,
		Limiter:  ratelimit.NewRedisLimiter(redisClient.Client, cfg.RateLimitRequests, cfg.RateLimitWindow),
		Notifier: notifier,
		Payments: payments,
		Images:   images,
		Validate: processor,
		Health:   routes.DefaultHealth(db, redisClient),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	auditDispatcher.Close()
	log.Info().Msg("server stopped")
}
