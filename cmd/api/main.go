package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	"go-jobboard-backend/internal/delivery/http/middleware"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/scheduler"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/validation"

	goredis "github.com/redis/go-redis/v9"
)

// @title           Job Board API
// @version         1.0
// @description     Skill matching, job listings and the application ledger.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job board backend", "port", cfg.Port)

	// 3. Setup Database
	ctx := context.Background()
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, cfg.DBMaxConns)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.RunMigrations {
		applied, err := database.Migrate(ctx, dbPool)
		if err != nil {
			logger.Log.Error("Failed to apply migrations", "error", err)
			os.Exit(1)
		}
		logger.Log.Info("Migrations complete", "applied", applied)
	}

	// 4. Setup Redis (optional; rate limiting falls back to memory)
	var redisClient *goredis.Client
	if cfg.UpstashRedisURL != "" {
		redisClient, err = redis.Connect(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redisClient.Close()
		}
	}
	rateLimiter := middleware.NewRateLimiter(redisClient)
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go rateLimiter.RunSweeper(sweepCtx, 5*time.Minute)

	// 5. Setup Repositories
	skillRepo := postgres.NewSkillRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	listingRepo := postgres.NewListingRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	categoryRepo := postgres.NewCategoryRepository(dbPool)

	// 6. Setup UseCases
	validate := validation.New()
	skillUC := usecase.NewSkillUsecase(skillRepo, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, skillRepo, applicationRepo, categoryRepo, validate, cfg.JobLifetimeDays)
	listingUC := usecase.NewListingUsecase(listingRepo, skillRepo, validate, usecase.ListingConfig{
		RecentPageSize:   cfg.ListingRecentPageSize,
		MatchPageSize:    cfg.ListingMatchPageSize,
		MatchedJobsLimit: cfg.MatchedJobsLimit,
	})
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo)
	reaperUC := usecase.NewReaperUsecase(jobRepo)
	healthUC := usecase.NewHealthUsecase(dbPool)

	// 7. Setup Token Verification
	var jwksProvider *auth.Provider
	if cfg.AuthJWKSURL != "" {
		jwksProvider = auth.NewProvider(cfg.AuthJWKSURL)
	}
	verifier := auth.NewVerifier(cfg.AuthJWTSecret, jwksProvider)

	// 8. Start the expiry reaper
	reaper := scheduler.NewReaper(reaperUC, cfg.ReaperSchedule, cfg.ReaperTimeout)
	if err := reaper.Start(); err != nil {
		logger.Log.Error("Failed to schedule expiry reaper", "error", err)
		os.Exit(1)
	}

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:         jobUC,
		ListingUC:     listingUC,
		SkillUC:       skillUC,
		ApplicationUC: applicationUC,
		HealthUC:      healthUC,
		Verifier:      verifier,
		RateLimiter:   rateLimiter,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	reaper.Stop(shutdownCtx)

	logger.Log.Info("Server exiting")
}
