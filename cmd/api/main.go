package main

import (
	"log"

	"shopsvc/internal/api"
	"shopsvc/internal/config"
	"shopsvc/internal/database"
	"shopsvc/internal/events"
	"shopsvc/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	// Initialize event publisher (optional, nil without brokers)
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer publisher.Close()

	// Initialize API server
	server, err := api.New(cfg, logger, db, publisher)
	if err != nil {
		logger.Fatal("Failed to initialize server: %v", err)
	}

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
