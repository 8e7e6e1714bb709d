package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"letsgo-store/internal/assistant"
	"letsgo-store/internal/catalog"
	"letsgo-store/internal/config"
	"letsgo-store/internal/database"
	"letsgo-store/internal/events"
	"letsgo-store/internal/handler"
	"letsgo-store/internal/payment"
	"letsgo-store/internal/repository"
	"letsgo-store/internal/router"
	"letsgo-store/internal/session"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting letsgo-store API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run schema migrations before opening the pool
	if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize Redis-backed session store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	sessions, err := session.NewRedisStore(ctx, redisClient, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize catalogue seed loader with S3 and local fallback
	fileLoader := catalog.NewFileLoader(logger)
	var seedLoader catalog.Loader = fileLoader

	if cfg.Catalog.S3Enabled {
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.Catalog.S3Bucket, cfg.Catalog.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			seedLoader = catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.Catalog.S3Key, true, logger)
		}
	}

	seeder := catalog.NewSeeder(seedLoader, productRepo, logger)
	if err := seeder.SeedIfEmpty(ctx, cfg.Catalog.SeedPath); err != nil {
		// A failed seed leaves an empty catalogue, not a broken server
		logger.Error().Err(err).Msg("catalogue seeding failed")
	}

	// Initialize order event publisher
	publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	defer publisher.Close()

	// Initialize payment components
	gateway := payment.NewGateway(payment.GatewayConfig{
		ClientKey:  cfg.Toss.ClientKey,
		SuccessURL: cfg.Server.SuccessURL(),
		FailURL:    cfg.Server.FailURL(),
	}, sessions, logger)
	confirmer := payment.NewClient(cfg.Toss.APIBase, cfg.Toss.SecretKey, logger)
	reconciler := payment.NewReconciler(sessions, customerRepo, orderRepo, productRepo, publisher, logger)

	// Initialize the assistant
	parser := assistant.NewRuleParser()
	chatService := assistant.NewService(parser, productRepo, customerRepo, sessions, gateway, logger)

	// Initialize HTTP handlers
	chatHandler := handler.NewChatHandler(chatService, logger)
	productHandler := handler.NewProductHandler(productRepo, logger)
	cartHandler := handler.NewCartHandler(sessions, productRepo, gateway, logger)
	paymentHandler := handler.NewPaymentHandler(confirmer, reconciler, logger)
	authHandler := handler.NewAuthHandler(sessions, logger)

	// Initialize router
	mux := router.New(chatHandler, productHandler, cartHandler, paymentHandler, authHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
