package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nileplate/backend/config"
	"github.com/nileplate/backend/internal/api"
	"github.com/nileplate/backend/internal/cache"
	"github.com/nileplate/backend/internal/database"
	"github.com/nileplate/backend/internal/logging"
	"github.com/nileplate/backend/internal/middleware"
	"github.com/nileplate/backend/internal/provider"
	"github.com/nileplate/backend/internal/server"
	"github.com/nileplate/backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Init(cfg.LogLevel, config.IsProduction())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.RunMigrations(db, "migrations", logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	// Redis powers the response cache and the rate limiters. The search
	// path degrades without it, so a connection failure is not fatal.
	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		logger.Warn("redis unavailable, response caching and rate limiting disabled", zap.Error(err))
		redisClient = nil
	}

	generator, err := provider.New(cfg.AI)
	if err != nil {
		logger.Fatal("provider setup failed", zap.Error(err))
	}
	logger.Info("generation provider ready",
		zap.String("provider", generator.Name()),
		zap.String("gemini_key", config.MaskKey(cfg.AI.GeminiAPIKey)),
		zap.String("deepseek_key", config.MaskKey(cfg.AI.DeepSeekAPIKey)))

	var (
		budget  service.UpstreamBudget
		limiter *middleware.RateLimiter
	)
	if redisClient != nil {
		budget = middleware.NewProviderBudget(redisClient, cfg.AI.CallsPerMinute)
		limiter = middleware.NewSearchRateLimiter(redisClient, cfg.RateLimit.SearchPerHour)
	}

	suggestionCache := cache.NewSuggestionCache(cfg.Cache.SuggestionCapacity)
	suggestions := service.NewSuggestionService(generator, suggestionCache, budget, logger)
	recipes := service.NewRecipeService(db, redisClient, suggestions, cfg.Search, cfg.Cache.ResponseTTL, logger)
	sessions := service.NewSessionService(db, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, logger)
	cleanup := service.NewCleanupService(db, logger)

	handlers := api.Handlers{
		Recipes:     api.NewRecipeHandler(recipes, sessions, limiter, logger),
		Ingredients: api.NewIngredientHandler(db, suggestions, logger),
		Sessions:    api.NewSessionHandler(sessions, logger),
		Pantry:      api.NewPantryHandler(service.NewPantryService(db), sessions, logger),
		Analytics:   api.NewAnalyticsHandler(service.NewAnalyticsService(db), logger),
		Health:      api.NewHealthHandler(db, redisClient, config.Version, logger),
	}

	srv := server.New(cfg, handlers, cleanup, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	if redisClient != nil {
		redisClient.Close()
	}
	logger.Info("server stopped")
}
