package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sispa-api/api/swagger"
	"github.com/noah-isme/sispa-api/internal/handler"
	"github.com/noah-isme/sispa-api/internal/repository"
	"github.com/noah-isme/sispa-api/internal/router"
	"github.com/noah-isme/sispa-api/internal/service"
	"github.com/noah-isme/sispa-api/pkg/cache"
	"github.com/noah-isme/sispa-api/pkg/config"
	"github.com/noah-isme/sispa-api/pkg/database"
	"github.com/noah-isme/sispa-api/pkg/logger"
	"github.com/noah-isme/sispa-api/pkg/mailer"
)

// @title SISPA API
// @version 1.0.0
// @description Administration backend for MOUs, courses, participants and admin registration
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	switch {
	case errors.Is(err, cache.ErrDisabled):
		logr.Info("redis cache disabled")
	case err != nil:
		logr.Warn("redis unavailable, continuing without cache", zap.Error(err))
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	var cacheSvc *service.CacheService
	readiness := map[string]handler.Pinger{"database": db}
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient)
		defer cacheRepo.Close() //nolint:errcheck
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Redis.CacheTTL, logr, true)
		readiness["cache"] = handler.PingFunc(cacheRepo.Ping)
	}

	txManager := repository.NewTxManager(db)
	adminRepo := repository.NewAdminRepository(db)
	aggregateRepo := repository.NewAggregateRepository(db)
	mouRepo := repository.NewMOURepository(db)
	courseRepo := repository.NewCourseRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)

	authSvc := service.NewAuthService(adminRepo, validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})
	registrationSvc := service.NewRegistrationService(adminRepo, txManager, newMailer(cfg, logr), validate, metrics, logr, service.RegistrationConfig{
		AppName:           cfg.Mail.FromName,
		PublicBaseURL:     cfg.PublicBaseURL,
		APIPrefix:         cfg.APIPrefix,
		ApproverAddress:   cfg.Mail.ApproverAddress,
		PhoneRegion:       cfg.Security.PhoneDefaultRegion,
		BcryptCost:        cfg.Security.BcryptCost,
		MinPasswordLength: cfg.Security.MinPasswordLength,
	})
	counterSvc := service.NewCounterService(aggregateRepo, metrics, logr)
	mouSvc := service.NewMOUService(mouRepo, counterSvc, txManager, cacheSvc, logr, cfg.APIPrefix)
	courseSvc := service.NewCourseService(courseRepo, counterSvc, txManager, cacheSvc, logr, cfg.APIPrefix)
	schoolSvc := service.NewSchoolService(aggregateRepo, mouRepo, cacheSvc, logr, cfg.APIPrefix)
	fieldSvc := service.NewFieldService(aggregateRepo, courseRepo, cacheSvc, logr, cfg.APIPrefix)
	candidateSvc := service.NewCandidateService(candidateRepo, courseRepo, validate, logr, cfg.Security.PhoneDefaultRegion)
	exportSvc := service.NewExportService(mouRepo, courseRepo, candidateRepo, logr)

	engine := router.New(router.Options{
		Config:    cfg,
		Logger:    logr,
		Validator: authSvc,
		Metrics:   metrics,
	}, router.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Registration: handler.NewRegistrationHandler(registrationSvc),
		MOU:          handler.NewMOUHandler(mouSvc),
		School:       handler.NewSchoolHandler(schoolSvc),
		Course:       handler.NewCourseHandler(courseSvc),
		Field:        handler.NewFieldHandler(fieldSvc),
		Participant:  handler.NewParticipantHandler(candidateSvc),
		Export:       handler.NewExportHandler(exportSvc),
		Health:       handler.NewHealthHandler(readiness),
		Metrics:      handler.NewMetricsHandler(metrics),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newMailer(cfg *config.Config, logr *zap.Logger) mailer.Mailer {
	if cfg.Mail.Provider == config.MailProviderSendGrid {
		if cfg.Mail.SendGridAPIKey == "" {
			logr.Fatal("SENDGRID_API_KEY is required when MAIL_PROVIDER=sendgrid")
		}
		return mailer.NewSendGrid(cfg.Mail.SendGridAPIKey, cfg.Mail.FromName, cfg.Mail.FromAddress, cfg.Mail.Timeout)
	}
	return mailer.NewLogMailer(logr, cfg.Mail.FromName)
}
