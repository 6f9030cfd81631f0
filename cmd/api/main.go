package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/medhq/hms-api/internal/config"
	"github.com/medhq/hms-api/internal/email"
	admissionHandler "github.com/medhq/hms-api/internal/handler/admission"
	appointmentHandler "github.com/medhq/hms-api/internal/handler/appointment"
	bedHandler "github.com/medhq/hms-api/internal/handler/bed"
	dashboardHandler "github.com/medhq/hms-api/internal/handler/dashboard"
	inventoryHandler "github.com/medhq/hms-api/internal/handler/inventory"
	patientHandler "github.com/medhq/hms-api/internal/handler/patient"
	userHandler "github.com/medhq/hms-api/internal/handler/user"
	"github.com/medhq/hms-api/internal/middleware"
	"github.com/medhq/hms-api/internal/repository/postgres"
	"github.com/medhq/hms-api/internal/router"
	admissionService "github.com/medhq/hms-api/internal/service/admission"
	appointmentService "github.com/medhq/hms-api/internal/service/appointment"
	bedService "github.com/medhq/hms-api/internal/service/bed"
	dashboardService "github.com/medhq/hms-api/internal/service/dashboard"
	inventoryService "github.com/medhq/hms-api/internal/service/inventory"
	patientService "github.com/medhq/hms-api/internal/service/patient"
	userService "github.com/medhq/hms-api/internal/service/user"
	"github.com/medhq/hms-api/pkg/auth"
	"github.com/medhq/hms-api/pkg/logger"
	"github.com/medhq/hms-api/pkg/security"
	"github.com/medhq/hms-api/pkg/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.New(&logger.Config{
		Level:      logger.ParseLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Logging.Pretty,
	})
	log.Logger = *appLog.Zerolog()

	validation.Init()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	bedRepo := postgres.NewBedRepository(db)
	admissionRepo := postgres.NewAdmissionRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)

	// Email alerts are optional; without SMTP config the inventory
	// service still works, it just stops notifying.
	var emailer email.Service
	if cfg.SMTP.Host != "" {
		emailer = email.NewSMTPService(cfg.SMTP)
	} else {
		log.Info().Msg("SMTP not configured, low-stock alerts disabled")
		emailer = email.NewNopService()
	}

	// Services
	userSvc := userService.NewService(userRepo)
	patientSvc := patientService.NewService(patientRepo, appointmentRepo, admissionRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, userRepo)
	bedSvc := bedService.NewService(bedRepo, admissionRepo, patientRepo)
	admissionSvc := admissionService.NewService(admissionRepo, bedRepo, patientRepo, userRepo)
	inventorySvc := inventoryService.NewService(inventoryRepo, emailer)
	dashboardSvc := dashboardService.NewService(patientRepo, appointmentRepo, bedRepo, admissionRepo, inventoryRepo)

	// Auth
	if cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("AUTH_JWT_SECRET is required")
	}
	verifier := auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	var apiKeys *security.APIKeyVerifier
	if len(cfg.Auth.APIKeyHashes) > 0 {
		apiKeys = security.NewAPIKeyVerifier(cfg.Auth.APIKeyHashes)
	}
	authMW := middleware.NewAuthMiddleware(verifier, userSvc, apiKeys, cfg.Auth.CacheTTL)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}

	r := router.New(authMW, db, router.Config{
		CORS:        corsConfig,
		RateLimiter: buildRateLimiter(cfg),
		Timeout:     cfg.Server.RequestTimeout,
	},
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		bedHandler.NewHandler(bedSvc),
		admissionHandler.NewHandler(admissionSvc),
		inventoryHandler.NewHandler(inventorySvc, authMW),
		userHandler.NewHandler(userSvc),
		dashboardHandler.NewHandler(dashboardSvc),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
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
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

func buildRateLimiter(cfg *config.Config) gin.HandlerFunc {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	if cfg.RateLimit.UseRedis && cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid redis URL")
		}
		client := redis.NewClient(opts)
		return middleware.NewRedisRateLimiter(client, cfg.RateLimit.Burst, cfg.RateLimit.Window).RateLimit()
	}

	return middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).RateLimit()
}
