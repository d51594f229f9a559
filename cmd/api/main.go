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
	"golang.org/x/crypto/bcrypt"

	"github.com/healthdost/kiosk-api/internal/config"
	"github.com/healthdost/kiosk-api/internal/email"
	"github.com/healthdost/kiosk-api/internal/gemini"
	adminHandler "github.com/healthdost/kiosk-api/internal/handler/admin"
	appointmentHandler "github.com/healthdost/kiosk-api/internal/handler/appointment"
	authHandler "github.com/healthdost/kiosk-api/internal/handler/auth"
	doctorHandler "github.com/healthdost/kiosk-api/internal/handler/doctor"
	healthHandler "github.com/healthdost/kiosk-api/internal/handler/health"
	patientHandler "github.com/healthdost/kiosk-api/internal/handler/patient"
	triageHandler "github.com/healthdost/kiosk-api/internal/handler/triage"
	"github.com/healthdost/kiosk-api/internal/middleware"
	"github.com/healthdost/kiosk-api/internal/repository/postgres"
	"github.com/healthdost/kiosk-api/internal/router"
	appointmentService "github.com/healthdost/kiosk-api/internal/service/appointment"
	authService "github.com/healthdost/kiosk-api/internal/service/auth"
	doctorService "github.com/healthdost/kiosk-api/internal/service/doctor"
	notificationService "github.com/healthdost/kiosk-api/internal/service/notification"
	patientService "github.com/healthdost/kiosk-api/internal/service/patient"
	triageService "github.com/healthdost/kiosk-api/internal/service/triage"
	"github.com/healthdost/kiosk-api/pkg/auth"
	"github.com/healthdost/kiosk-api/pkg/logger"
	"github.com/healthdost/kiosk-api/pkg/metrics"
	"github.com/healthdost/kiosk-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	consultationRepo := postgres.NewConsultationRepository(db)
	agentRepo := postgres.NewAgentRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Shared infrastructure
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	tokenTTL := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, tokenTTL)
	emailSvc := email.NewSMTPService(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	geminiClient := gemini.NewClient(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second,
	})
	appMetrics := metrics.New("kiosk")

	// Services
	doctorSvc := doctorService.NewService(doctorRepo, outboxRepo, emailSvc, hasher)
	patientSvc := patientService.NewService(patientRepo, outboxRepo, hasher)
	triageSvc := triageService.NewService(patientRepo, consultationRepo, outboxRepo, doctorSvc, geminiClient)
	notifySvc := notificationService.NewService(notificationRepo, emailSvc)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, doctorRepo, consultationRepo, outboxRepo, emailSvc, notifySvc)
	authSvc := authService.NewService(patientRepo, doctorRepo, agentRepo, jwtSvc, hasher, tokenTTL)

	// HTTP layer
	authMW := middleware.NewAuthMiddleware(jwtSvc)
	r := router.NewRouter(
		authMW,
		authHandler.NewHandler(authSvc),
		healthHandler.NewHandler(db),
		triageHandler.NewHandler(triageSvc, appMetrics),
		patientHandler.NewHandler(patientSvc),
		doctorHandler.NewHandler(doctorSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		adminHandler.NewHandler(doctorSvc),
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst: cfg.RateLimit.Burst,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsPrefix:  "kiosk_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
