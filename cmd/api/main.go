package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"career-portal-backend/config"
	_ "career-portal-backend/docs" // Important for Swagger
	v1 "career-portal-backend/internal/delivery/http/v1"
	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/repository/cache"
	"career-portal-backend/internal/repository/docstore"
	"career-portal-backend/internal/repository/memory"
	"career-portal-backend/internal/repository/postgres"
	"career-portal-backend/internal/usecase"
	"career-portal-backend/pkg/antivirus"
	"career-portal-backend/pkg/auth"
	"career-portal-backend/pkg/database"
	"career-portal-backend/pkg/jobscraper"
	"career-portal-backend/pkg/llm"
	"career-portal-backend/pkg/llm/gemini"
	"career-portal-backend/pkg/logger"
	"career-portal-backend/pkg/redis"
	"career-portal-backend/pkg/storage"
	"career-portal-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Career Portal API
// @version         1.0
// @description     Profiles, resumes, setup wizards, AI assistance and job search for the career portal.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting career portal backend", "port", cfg.Port, "store", cfg.StoreDriver)
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	checks := map[string]usecase.HealthCheck{}

	// 3. Setup document store and search history
	var (
		store   domain.DocumentStore
		history domain.JobSearchRepository
	)
	switch cfg.StoreDriver {
	case "memory":
		logger.Log.Warn("Using in-memory store; data is lost on restart")
		store = memory.NewDocumentStore()
		history = memory.NewJobSearchRepository()
	default:
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		if store, err = postgres.NewDocumentStore(dbPool); err != nil {
			logger.Log.Error("Failed to prepare document store", "error", err)
			os.Exit(1)
		}
		if history, err = postgres.NewJobSearchRepository(dbPool); err != nil {
			logger.Log.Error("Failed to prepare search history", "error", err)
			os.Exit(1)
		}
		checks["database"] = func(ctx context.Context) error { return dbPool.Ping(ctx) }
	}
	gateway := docstore.NewGateway(store)

	// 4. Setup Redis (optional)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory fallbacks", "error", err)
	}
	if cfg.RedisURL != "" {
		checks["redis"] = redis.HealthCheck
	}
	defer redis.Close()

	// 5. Setup external collaborators
	var model llm.ChatModel
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Log.Error("Failed to create Gemini client", "error", err)
		} else {
			model = client
		}
	} else {
		logger.Log.Warn("GEMINI_API_KEY not set - AI assistance will be unavailable")
	}

	var photos domain.PhotoStorage
	if cfg.S3Configured() {
		ps, err := storage.NewPhotoStore(ctx, storage.Config{
			Provider:        storage.Provider(cfg.S3Provider),
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			WasabiEndpoint:  cfg.WasabiEndpoint,
		})
		if err != nil {
			logger.Log.Error("Failed to create photo storage", "error", err)
		} else {
			photos = ps
		}
	} else {
		logger.Log.Warn("Object storage not configured - photo uploads will be unavailable")
	}

	scraper := jobscraper.New(cfg.JobScraperURL, time.Duration(cfg.JobScraperTimeoutSeconds)*time.Second)
	jobCache := cache.NewJobCache(redis.Client(), time.Duration(cfg.JobCacheTTLMinutes)*time.Minute, 500)

	var scanner antivirus.Scanner
	if cfg.ClamAVAddress != "" {
		clam := antivirus.NewClamAV(cfg.ClamAVAddress, 30*time.Second)
		scanner = clam
		checks["antivirus"] = clam.Ping
	}

	var jwksProvider *auth.Provider
	if cfg.AuthJWKSURL != "" {
		jwksProvider = auth.NewProvider(cfg.AuthJWKSURL)
	}

	// 6. Setup UseCases
	validate := validation.New()
	accountUC := usecase.NewAccountUsecase(gateway, photos, validate)
	profileUC := usecase.NewProfileUsecase(gateway, validate)
	setupUC := usecase.NewSetupUsecase(gateway, validate)
	resumeUC := usecase.NewResumeUsecase(gateway, validate)
	aiUC := usecase.NewAIUsecase(model, gateway, validate)
	jobUC := usecase.NewJobUsecase(scraper, jobCache, history, validate)
	healthUC := usecase.NewHealthUsecase(checks)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AccountUC:    accountUC,
		ProfileUC:    profileUC,
		SetupUC:      setupUC,
		ResumeUC:     resumeUC,
		AIUC:         aiUC,
		JobUC:        jobUC,
		HealthUC:     healthUC,
		Scanner:      scanner,
		JWKSProvider: jwksProvider,
		Config:       cfg,
		Redis:        redis.Client,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
