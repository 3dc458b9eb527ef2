package main

import (
	"log"

	"github.com/anonto42/nano-chirp/backend/internal/router"
	"github.com/anonto42/nano-chirp/backend/pkg/config"
	"github.com/anonto42/nano-chirp/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	// Redis is optional; the like cache degrades to the database without it
	redisClient, err := config.InitRedis(cfg)
	if err != nil {
		log.Printf("Redis unavailable, continuing without like cache: %v", err)
		redisClient = nil
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, db, redisClient, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
