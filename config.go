package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront backend.
type Config struct {
	Port             string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string

	// Optional Redis cache for product reads. Empty disables caching.
	RedisURL string

	// Optional Kafka event publishing. Empty broker list disables it.
	KafkaBrokers []string
	KafkaTopic   string

	// Stripe credentials. Separate webhook secrets for the live and test
	// endpoints.
	StripeAPIKey            string
	StripeWebhookSecret     string
	StripeWebhookSecretTest string
}

// LoadConfig reads configuration from the environment, with a .env file as
// fallback for local development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisURL:   os.Getenv("REDIS_URL"),
		KafkaTopic: getEnv("KAFKA_TOPIC", "storefront.events"),

		StripeAPIKey:            os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret:     os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeWebhookSecretTest: os.Getenv("STRIPE_WEBHOOK_SECRET_TEST"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.StripeAPIKey == "" {
		return nil, fmt.Errorf("STRIPE_API_KEY not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
