package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shopsvc/internal/api/handlers"
	"shopsvc/internal/api/middleware"
	"shopsvc/internal/config"
	"shopsvc/internal/database"
	"shopsvc/internal/events"
	"shopsvc/internal/logger"
	"shopsvc/internal/shopify"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, publisher *events.Publisher) (*Server, error) {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Shopify accessors
	httpClient := &http.Client{Timeout: 30 * time.Second}
	rest := shopify.NewClient(cfg.RestBaseURL(), shopify.Credentials{
		AccessToken: cfg.ShopifyAccessToken,
		APIKey:      cfg.ShopifyAPIKey,
		Password:    cfg.ShopifyPassword,
	}, httpClient)
	gql, err := shopify.NewGraphQLClient(cfg.GraphQLURL(), httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql client: %w", err)
	}

	// Operation services
	resolver := shopify.NewResolver(gql, logger)
	inventory := shopify.NewInventoryService(rest, resolver, logger)
	tags := shopify.NewTagService(rest)
	products := shopify.NewProductService(rest, resolver, logger)
	customers := shopify.NewCustomerService(rest, logger)
	orders := shopify.NewOrderService(rest, resolver)
	webhooks := shopify.NewWebhookService(rest, logger)
	resort := shopify.NewResortWorkflow(products, logger)

	// Initialize handlers
	stockHandler := handlers.NewStockHandler(inventory, resolver, db.DB, publisher, logger)
	productHandler := handlers.NewProductHandler(products, logger)
	entityHandler := handlers.NewEntityHandler(tags, rest, logger)
	customerHandler := handlers.NewCustomerHandler(customers, logger)
	orderHandler := handlers.NewOrderHandler(orders, logger)
	webhookHandler := handlers.NewWebhookHandler(webhooks, logger)
	maintenanceHandler := handlers.NewMaintenanceHandler(resort, logger)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Stock
		stock := v1.Group("/stock")
		{
			stock.POST("/adjust", stockHandler.Adjust)
			stock.POST("/set", stockHandler.Set)
			stock.GET("/mutations", stockHandler.Mutations)
		}

		// Variants
		variants := v1.Group("/variants")
		{
			variants.GET("/resolve", stockHandler.Resolve)
			variants.GET("/:id", productHandler.GetVariant)
			variants.GET("/:id/metafields", productHandler.VariantMetafields)
			variants.POST("/:id/metafields", productHandler.AddVariantMetafields)
		}

		// Products
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/count", productHandler.Count)
			products.GET("/by-tag", productHandler.ByTag)
			products.GET("/:id", productHandler.Get)
			products.POST("", productHandler.Create)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
			products.POST("/:id/metafields", productHandler.AddMetafields)
		}

		// Cross-entity operations
		entities := v1.Group("/entities")
		{
			entities.POST("/:type/:id/tags", entityHandler.MutateTags)
			entities.GET("/:type/:id/metafields", entityHandler.Metafields)
			entities.POST("/:type/delete", entityHandler.Delete)
		}

		// Customers
		customers := v1.Group("/customers")
		{
			customers.GET("", customerHandler.List)
			customers.GET("/exists", customerHandler.Exists)
			customers.PUT("/:id", customerHandler.Update)
			customers.POST("/merge", customerHandler.Merge)
		}

		// Orders
		orders := v1.Group("/orders")
		{
			orders.GET("", orderHandler.List)
			orders.GET("/count", orderHandler.Count)
			orders.GET("/lookup", orderHandler.Lookup)
			orders.GET("/:id", orderHandler.Get)
		}

		// Webhooks
		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("", webhookHandler.Create)
			webhooks.DELETE("/:id", webhookHandler.Delete)
		}

		// Maintenance
		maintenance := v1.Group("/maintenance")
		{
			maintenance.POST("/resort-variants", maintenanceHandler.ResortVariants)
		}
	}

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}, nil
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}
