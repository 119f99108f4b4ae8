package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"payguard-lab/internal/api"
	"payguard-lab/internal/api/handlers"
	"payguard-lab/internal/config"
	"payguard-lab/internal/domain/services"
	"payguard-lab/internal/infrastructure/cache"
	"payguard-lab/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting PayGuard Lab")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional: it backs the assessment cache and rate limiter,
	// but the scoring engine itself has no infrastructure dependencies.
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without caching and rate limiting")
		}
	}
	defer func() {
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Train the text classifier on the built-in labeled corpus
	classifier, err := services.NewTextClassifier(services.DefaultTrainingCorpus(), cfg.Classifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to train text classifier")
	}
	log.Info().Int("vocabulary_size", classifier.VocabularySize()).Msg("text classifier ready")

	// Initialize the risk assessor
	assessor := services.NewRiskAssessor(cfg.Scoring, classifier, log)
	log.Info().
		Int("keywords", len(assessor.Lexical().Keywords())).
		Msg("risk assessor initialized")

	// Initialize handlers
	deps := handlers.Dependencies{
		Assessor:   assessor,
		Classifier: classifier,
		Cache:      redisCache,
		CacheTTL:   cfg.Redis.CacheTTL,
		Logger:     log,
	}
	h := handlers.NewHandlers(deps)

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, log)
	httpHandler := router.Setup()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
