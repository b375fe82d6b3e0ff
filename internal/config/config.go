package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DatabaseURL string

	// Kafka
	KafkaBrokers  string
	ActivityTopic string

	// API Configuration
	APIPort string
	APIHost string

	// Shopify Storefront API
	ShopDomain      string
	StorefrontToken string

	// Catalog paging
	PageSize int

	// Cart pricing
	ShippingFee      float64
	FreeShippingOver float64

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		DatabaseURL:      getEnv("DATABASE_URL", "sqlite://storefront.db"),
		KafkaBrokers:     getEnv("KAFKA_BROKERS", ""),
		ActivityTopic:    getEnv("ACTIVITY_TOPIC", "storefront-activity"),
		APIPort:          getEnv("API_PORT", "8080"),
		APIHost:          getEnv("API_HOST", "0.0.0.0"),
		ShopDomain:       getEnv("SHOPIFY_STORE_DOMAIN", ""),
		StorefrontToken:  getEnv("SHOPIFY_STOREFRONT_ACCESS_TOKEN", ""),
		PageSize:         getEnvAsInt("CATALOG_PAGE_SIZE", 24),
		ShippingFee:      getEnvAsFloat("SHIPPING_FEE", 5.99),
		FreeShippingOver: getEnvAsFloat("FREE_SHIPPING_OVER", 50),
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
