package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/hms/hms-api/internal/config"
	appointmentHandler "github.com/hms/hms-api/internal/handler/appointment"
	authHandler "github.com/hms/hms-api/internal/handler/auth"
	dashboardHandler "github.com/hms/hms-api/internal/handler/dashboard"
	documentHandler "github.com/hms/hms-api/internal/handler/document"
	healthHandler "github.com/hms/hms-api/internal/handler/health"
	patientHandler "github.com/hms/hms-api/internal/handler/patient"
	recordHandler "github.com/hms/hms-api/internal/handler/record"
	staffHandler "github.com/hms/hms-api/internal/handler/staff"
	"github.com/hms/hms-api/internal/middleware"
	"github.com/hms/hms-api/internal/repository/postgres"
	"github.com/hms/hms-api/internal/router"
	"github.com/hms/hms-api/internal/seed"
	appointmentService "github.com/hms/hms-api/internal/service/appointment"
	authService "github.com/hms/hms-api/internal/service/auth"
	dashboardService "github.com/hms/hms-api/internal/service/dashboard"
	documentService "github.com/hms/hms-api/internal/service/document"
	patientService "github.com/hms/hms-api/internal/service/patient"
	recordService "github.com/hms/hms-api/internal/service/record"
	staffService "github.com/hms/hms-api/internal/service/staff"
	"github.com/hms/hms-api/pkg/auth"
	"github.com/hms/hms-api/pkg/logger"
	"github.com/hms/hms-api/pkg/messaging/redis"
	"github.com/hms/hms-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	appLogger := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	recordRepo := postgres.NewMedicalRecordRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)
	userRepo := postgres.NewUserRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	if err := seed.Run(context.Background(), db, userRepo, patientRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	// Services
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		Expiry:   cfg.JWT.Expiry(),
	})
	authSvc := authService.NewService(userRepo, jwtSvc)
	patientSvc := patientService.NewService(patientRepo, outboxRepo, appLogger)
	appointmentSvc := appointmentService.NewService(appointmentRepo, outboxRepo, appLogger)
	recordSvc := recordService.NewService(recordRepo)
	documentSvc := documentService.NewService(documentRepo, documentService.Config{
		Dir:          cfg.Upload.Dir,
		MaxSizeBytes: cfg.Upload.MaxSizeBytes,
	})
	dashboardSvc := dashboardService.NewService(dashboardRepo)
	staffSvc := staffService.NewService(userRepo)

	authMW := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(router.Config{
		RateLimit:     rate.Limit(cfg.Server.RateLimit),
		RateBurst:     cfg.Server.RateBurst,
		MaxUploadSize: cfg.Upload.MaxSizeBytes,
		CORS:          middleware.DefaultCORSConfig(),
	}, authMW, router.Handlers{
		Auth:        authHandler.NewHandler(authSvc),
		Patient:     patientHandler.NewHandler(patientSvc),
		Appointment: appointmentHandler.NewHandler(appointmentSvc),
		Record:      recordHandler.NewHandler(recordSvc),
		Document:    documentHandler.NewHandler(documentSvc),
		Dashboard:   dashboardHandler.NewHandler(dashboardSvc),
		Staff:       staffHandler.NewHandler(staffSvc),
		Health:      healthHandler.NewHandler(db),
	})

	// Outbox processor publishes clinical change events to Redis. The broker
	// is optional: without Redis the API still serves requests and events
	// stay queued.
	processorCtx, cancelProcessor := context.WithCancel(context.Background())
	defer cancelProcessor()
	if cfg.Redis.URL != "" {
		broker, err := redis.NewRedisBroker(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
			BatchSize:    cfg.Outbox.BatchSize,
			PollInterval: time.Duration(cfg.Outbox.PollIntervalSeconds) * time.Second,
			Channel:      cfg.Redis.Channel,
		}, appLogger)
		go processor.Start(processorCtx)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	cancelProcessor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
