// Package config handles loading and managing application configuration.
package config

import (
	"os"
	"strings"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Stripe   StripeConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    string
	GinMode string // "debug", "release", or "test"
}

// StripeConfig holds payment provider credentials.
type StripeConfig struct {
	APIKey        string
	WebhookSecret string
}

// DatabaseConfig holds product store configuration.
// When URL is empty the service runs on the in-memory store.
type DatabaseConfig struct {
	URL            string
	MigrationsPath string
}

// RedisConfig holds the optional product cache configuration.
// When Addr is empty the cache is disabled.
type RedisConfig struct {
	Addr string
}

// KafkaConfig holds the optional payment event publication configuration.
// When Brokers is empty, events are discarded.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Stripe: StripeConfig{
			APIKey:        getEnv("STRIPE_API_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS"),
			Topic:   getEnv("KAFKA_TOPIC", "payment-events"),
		},
	}
}

// getEnv retrieves an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList retrieves a comma-separated environment variable as a slice.
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
