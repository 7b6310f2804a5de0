package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Shopify credentials
	ShopifyAPIKey      string
	ShopifyAccessToken string
	ShopifyPassword    string
	ShopifyShopURL     string
	ShopifyAPIVersion  string

	// Database
	DatabaseURL string

	// Kafka
	KafkaBrokers string
	KafkaTopic   string

	// API Configuration
	APIPort string
	APIHost string

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	cfg := &Config{
		ShopifyAPIKey:      getEnv("SHOPIFY_API_KEY", ""),
		ShopifyAccessToken: getEnv("SHOPIFY_ACCESS_TOKEN", ""),
		ShopifyPassword:    getEnv("SHOPIFY_PASSWORD", ""),
		ShopifyShopURL:     getEnv("SHOPIFY_SHOP_URL", ""),
		ShopifyAPIVersion:  getEnv("SHOPIFY_API_VERSION", "2023-10"),
		DatabaseURL:        getEnv("DATABASE_URL", "sqlite://shopsvc.db"),
		KafkaBrokers:       getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "stock-events"),
		APIPort:            getEnv("API_PORT", "8080"),
		APIHost:            getEnv("API_HOST", "0.0.0.0"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	if cfg.ShopifyShopURL == "" {
		return nil, fmt.Errorf("SHOPIFY_SHOP_URL is required")
	}
	if cfg.ShopifyAccessToken == "" && (cfg.ShopifyAPIKey == "" || cfg.ShopifyPassword == "") {
		return nil, fmt.Errorf("either SHOPIFY_ACCESS_TOKEN or SHOPIFY_API_KEY and SHOPIFY_PASSWORD are required")
	}

	return cfg, nil
}

// ShopDomain returns the shop URL without a scheme or trailing slash.
func (c *Config) ShopDomain() string {
	domain := strings.TrimPrefix(c.ShopifyShopURL, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimRight(domain, "/")
}

// RestBaseURL is the Admin REST API root for the configured shop and version.
func (c *Config) RestBaseURL() string {
	return fmt.Sprintf("https://%s/admin/api/%s", c.ShopDomain(), c.ShopifyAPIVersion)
}

// GraphQLURL builds the Admin GraphQL endpoint with inline credentials.
func (c *Config) GraphQLURL() string {
	return fmt.Sprintf("https://%s:%s@%s/admin/api/%s/graphql.json",
		c.ShopifyAPIKey, c.ShopifyAccessToken, c.ShopDomain(), c.ShopifyAPIVersion)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
