package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-resume-builder/config"
	_ "go-resume-builder/docs" // Important for Swagger
	v1 "go-resume-builder/internal/delivery/http/v1"
	"go-resume-builder/internal/domain"
	"go-resume-builder/internal/extraction"
	"go-resume-builder/internal/repository/memory"
	"go-resume-builder/internal/repository/postgres"
	"go-resume-builder/internal/schema"
	"go-resume-builder/internal/usecase"
	"go-resume-builder/pkg/database"
	"go-resume-builder/pkg/logger"
	"go-resume-builder/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           Resume Builder API
// @version         1.0
// @description     Backend for the resume builder: PDF parsing, schema validation, and resume storage.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting resume builder backend", "port", cfg.Port, "backend", cfg.StorageBackend)

	// 3. Setup Store (deployment-time backend selection)
	var store domain.ResumeStore
	switch cfg.StorageBackend {
	case "postgres":
		dbPool, err := database.NewPostgresConnection(context.Background(), cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		if err := postgres.Migrate(context.Background(), dbPool); err != nil {
			logger.Log.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		store = postgres.NewResumeStore(dbPool)
	default:
		store = memory.NewStore()
	}

	// 4. Setup Redis (optional, rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("Redis unavailable", "error", err)
	}
	defer redis.Close()

	// 5. Setup Schema Validator
	schemaValidator, err := schema.NewValidator()
	if err != nil {
		logger.Log.Error("Failed to compile resume schema", "error", err)
		os.Exit(1)
	}

	// 6. Setup Extraction Adapter
	structurer, err := extraction.NewGeminiStructurer(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Log.Error("Failed to create Gemini client", "error", err)
		os.Exit(1)
	}
	defer structurer.Close()

	// 7. Setup UseCases
	validate := validator.New()
	resumeUC := usecase.NewResumeUsecase(store, schemaValidator, validate)
	parseUC := usecase.NewParseUsecase(extraction.NewPDFExtractor(), structurer)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ResumeUC: resumeUC,
		ParseUC:  parseUC,
		Config:   cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
