package config

import (
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type PayPalConfig struct {
	ClientID     string
	ClientSecret string
	APIBase      string
}

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Database configuration
	DatabaseURL string

	// Auth configuration
	JWTSecret string

	// PayPal configuration
	PayPal PayPalConfig

	// Site configuration
	BaseURL     string
	FrontendURL string

	// Monitoring
	EnableMetrics bool
}

func LoadConfig() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=carrental port=5432 sslmode=disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		PayPal: PayPalConfig{
			ClientID:     getEnv("PAYPAL_CLIENT_ID", ""),
			ClientSecret: getEnv("PAYPAL_CLIENT_SECRET", ""),
			APIBase:      getEnv("PAYPAL_API_BASE", "https://api-m.sandbox.paypal.com"),
		},

		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}
}

func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
