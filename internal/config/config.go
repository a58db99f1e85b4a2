package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// DefaultCatalogFeedURL is the published product sales feed.
const DefaultCatalogFeedURL = "https://raw.githubusercontent.com/Arpit-Raj1/walmart-smart-inventory-management/main/public/40_product_walmart_india_sales_data__3.csv"

// Config holds all application configuration
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	PredictorBaseURL string
	CatalogFeedURL   string

	BatchProductCount int
	BatchDelayMs      int
	RequestTimeout    int // seconds

	HTTPAddr string
	LogLevel string

	TelegramBotToken string
	TelegramChatID   int64
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.DBHost = getEnvWithDefault("DB_HOST", "localhost")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = getEnvWithDefault("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnvWithDefault("DB_NAME", "inventory")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")

	cfg.PredictorBaseURL = os.Getenv("PREDICTOR_BASE_URL")
	cfg.CatalogFeedURL = getEnvWithDefault("CATALOG_FEED_URL", DefaultCatalogFeedURL)

	cfg.BatchProductCount = getEnvIntWithDefault("BATCH_PRODUCT_COUNT", 40)
	cfg.BatchDelayMs = getEnvIntWithDefault("BATCH_DELAY_MS", 500)
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)

	cfg.HTTPAddr = getEnvWithDefault("HTTP_ADDR", ":8080")
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0)

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
