package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"shopsvc/internal/config"
	"shopsvc/internal/logger"
	"shopsvc/internal/shopify"
)

// Walks the whole product catalog and rewrites each multi-variant product's
// variant order by size.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Shopify accessors
	httpClient := &http.Client{Timeout: 30 * time.Second}
	rest := shopify.NewClient(cfg.RestBaseURL(), shopify.Credentials{
		AccessToken: cfg.ShopifyAccessToken,
		APIKey:      cfg.ShopifyAPIKey,
		Password:    cfg.ShopifyPassword,
	}, httpClient)
	gql, err := shopify.NewGraphQLClient(cfg.GraphQLURL(), httpClient)
	if err != nil {
		logger.Fatal("Failed to build graphql client: %v", err)
	}

	resolver := shopify.NewResolver(gql, logger)
	products := shopify.NewProductService(rest, resolver, logger)
	resort := shopify.NewResortWorkflow(products, logger)

	logger.Info("Resorting variants for shop %s...", cfg.ShopDomain())
	stats, err := resort.Run(context.Background())
	if err != nil {
		logger.Fatal("Resort failed after %d pages: %v", stats.Pages, err)
	}

	logger.Info("Resort complete: %d pages, %d products updated", stats.Pages, stats.Updated)
}
