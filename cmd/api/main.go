// E-commerce backend: product catalog plus payment intent orchestration.
//
// This is the main entry point. It wires up all dependencies and starts the
// HTTP server.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NaoufalElmeskini/wlad-lwe9t-back/config"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/adapters/kafkapub"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/adapters/memory"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/adapters/postgres"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/adapters/productcache"
	stripeadapter "github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/adapters/stripe"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/api"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/domain"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/payment"
	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/product"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.Println("Starting e-commerce backend...")

	cfg := config.Load()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Wire up dependencies (manual dependency injection)
	//
	// Product store: Postgres when configured, in-memory otherwise.
	productRepo, cleanup, err := buildProductRepository(cfg)
	if err != nil {
		log.Fatalf("Product store error: %v", err)
	}
	defer cleanup()

	// Payment event publication: Kafka when brokers are configured.
	var events domain.EventPublisher = kafkapub.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := kafkapub.NewPublisher(cfg.Kafka.Topic, cfg.Kafka.Brokers...)
		defer publisher.Close()
		events = publisher
		log.Printf("Publishing payment events to %s (topic %s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Service layer
	paymentService := payment.NewService(stripeadapter.NewAdapter(cfg.Stripe.APIKey), events)
	productService := product.NewService(productRepo)

	// API layer
	router := api.SetupRouter(
		api.NewPaymentHandler(paymentService, cfg.Stripe.WebhookSecret),
		api.NewProductHandler(productService),
		cfg.Server.GinMode,
	)

	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	go func() {
		log.Printf("Server listening on %s", serverAddr)
		if err := router.Run(serverAddr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

// buildProductRepository selects and initializes the product store, layering
// the Redis cache on top when configured.
func buildProductRepository(cfg *config.Config) (domain.ProductRepository, func(), error) {
	cleanup := func() {}

	var repo domain.ProductRepository
	if cfg.Database.URL != "" {
		pg, err := postgres.NewRepository(cfg.Database.URL)
		if err != nil {
			return nil, cleanup, err
		}
		if err := pg.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			pg.Close()
			return nil, cleanup, err
		}
		cleanup = func() { pg.Close() }
		repo = pg
		log.Println("Using Postgres product store")
	} else {
		repo = memory.NewRepository()
		log.Println("DATABASE_URL not set, using in-memory product store")
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		repo = productcache.NewRepository(repo, client)
		log.Printf("Product cache enabled on %s", cfg.Redis.Addr)
	}

	return repo, cleanup, nil
}

// validateConfig checks that required configuration values are set.
func validateConfig(cfg *config.Config) error {
	if cfg.Stripe.APIKey == "" {
		return fmt.Errorf("STRIPE_API_KEY is required")
	}
	if cfg.Stripe.WebhookSecret == "" {
		log.Println("Warning: STRIPE_WEBHOOK_SECRET not set, webhook verification will reject all events")
	}
	return nil
}
