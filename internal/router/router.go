package router

import (
	"log"

	"github.com/anonto42/nano-chirp/backend/internal/cache"
	"github.com/anonto42/nano-chirp/backend/internal/handlers"
	"github.com/anonto42/nano-chirp/backend/internal/middleware"
	"github.com/anonto42/nano-chirp/backend/internal/models"
	"github.com/anonto42/nano-chirp/backend/internal/repositories"
	"github.com/anonto42/nano-chirp/backend/pkg/config"
	"github.com/anonto42/nano-chirp/backend/pkg/pagination"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Tweet{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	tweetRepo := repositories.NewPostgresTweetRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	likeCache := cache.NewLikeCache(redisClient)
	cursorCodec := pagination.NewCodec(cfg.CursorSecret)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public routes (identity optional, personalizes results) ---
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuthMiddleware())

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(tweetRepo, likeRepo, cursorCodec)
	feedHandler.RegisterFeedRoutes(public)
	log.Println("Feed routes configured.")

	// Profile routes
	profileHandler := handlers.NewProfileHandler(userRepo, followRepo, tweetRepo)
	profileHandler.RegisterProfileRoutes(public)
	log.Println("Profile routes configured.")

	// Tweet routes
	tweetHandler := handlers.NewTweetHandler(tweetRepo, userRepo)
	tweetHandler.RegisterTweetRoutes(api)
	log.Println("Tweet routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, tweetRepo, userRepo, notificationRepo, likeCache)
	likeHandler.RegisterLikeRoutes(api, public)
	log.Println("Like routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
