package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobscout-backend/config"
	"go-jobscout-backend/internal/agents/embedding"
	"go-jobscout-backend/internal/agents/jdparser"
	"go-jobscout-backend/internal/agents/resumeparser"
	v1 "go-jobscout-backend/internal/delivery/http/v1"
	"go-jobscout-backend/internal/discovery"
	"go-jobscout-backend/internal/repository/memory"
	"go-jobscout-backend/internal/repository/postgres"
	"go-jobscout-backend/internal/scheduler"
	"go-jobscout-backend/internal/usecase"
	"go-jobscout-backend/pkg/database"
	"go-jobscout-backend/pkg/llm"
	"go-jobscout-backend/pkg/logger"
	"go-jobscout-backend/pkg/redis"
	"go-jobscout-backend/pkg/scraper"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting jobscout backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, rate limiter falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	companyRepo := postgres.NewCompanyRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	savedJobRepo := postgres.NewSavedJobRepository(dbPool)
	candidateRepo := memory.NewCandidateRepository()

	// 6. Setup Model Client and Agents
	llmClient, err := llm.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.EmbeddingModel)
	if err != nil {
		logger.Log.Error("Failed to create model client", "error", err)
		os.Exit(1)
	}

	jdParser := jdparser.NewParser(llmClient)
	resumeParser := resumeparser.NewParser(llmClient)
	embedder := embedding.NewEmbedder(llmClient)
	extractor := discovery.NewExtractor(llmClient)

	// 7. Setup Discovery Components
	locator := discovery.NewLocator()
	fetcher := discovery.NewFetcher()
	renderer := scraper.NewRenderer()
	defer renderer.Close()

	// 8. Setup UseCases
	validate := validator.New()
	companyUC := usecase.NewCompanyUsecase(companyRepo, llmClient, validate)
	jobUC := usecase.NewJobUsecase(jobRepo)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, resumeParser, embedder)
	savedJobUC := usecase.NewSavedJobUsecase(savedJobRepo, jobRepo)
	matchUC := usecase.NewMatchUsecase(jobRepo, candidateRepo, embedder)
	ingestionUC := usecase.NewIngestionUsecase(companyRepo, jobRepo, locator, fetcher, renderer, extractor, jdParser, embedder)

	// 9. Setup Scheduler
	sched := scheduler.New(cfg, companyRepo, jobRepo, ingestionUC)
	if err := sched.Start(); err != nil {
		logger.Log.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CompanyUC:   companyUC,
		JobUC:       jobUC,
		CandidateUC: candidateUC,
		SavedJobUC:  savedJobUC,
		MatchUC:     matchUC,
		IngestionUC: ingestionUC,
		Locator:     locator,
		Scheduler:   sched,
		DB:          dbPool,
		Config:      cfg,
	})

	// 11. Start Server
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

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
