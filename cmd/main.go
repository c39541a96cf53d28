package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/config"
	"github.com/eunwoo0701/cafe-delight/internal/auth"
	"github.com/eunwoo0701/cafe-delight/internal/clients"
	"github.com/eunwoo0701/cafe-delight/internal/delivery"
	"github.com/eunwoo0701/cafe-delight/internal/middleware"
	"github.com/eunwoo0701/cafe-delight/internal/repository"
	"github.com/eunwoo0701/cafe-delight/internal/seed"
	"github.com/eunwoo0701/cafe-delight/internal/usecase"
	"github.com/eunwoo0701/cafe-delight/pkg/db"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid LOG_LEVEL %q, falling back to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting Cafe Delight...")

	// --- Database ---
	database, err := db.Connect(cfg.DatabaseURL, cfg.DatabaseFallbackURL, logger)
	if err != nil {
		logger.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	if err := db.Migrate(database, cfg.SchemaFile, logger); err != nil {
		logger.Fatalf("FATAL: Failed to apply database schema: %v", err)
	}

	// --- Dependency Injection ---
	userRepo := repository.NewPostgresUserRepository(database, logger)
	productRepo := repository.NewPostgresProductRepository(database, logger)
	orderRepo := repository.NewPostgresOrderRepository(database, logger)
	reviewRepo := repository.NewPostgresReviewRepository(database, logger)
	faqRepo := repository.NewPostgresFAQRepository(database, logger)
	logger.Info("Repositories initialized.")

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	generator := clients.NewGeminiHTTPClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiTimeout, logger)

	userUseCase := usecase.NewUserUseCase(userRepo, tokens, logger)
	productUseCase := usecase.NewProductUseCase(productRepo, reviewRepo, logger)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo, logger)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, productRepo, orderRepo, logger)
	faqUseCase := usecase.NewFAQUseCase(faqRepo, logger)
	recommendUseCase := usecase.NewRecommendationUseCase(productRepo, generator, logger)
	adminUseCase := usecase.NewAdminUseCase(userRepo, productRepo, orderRepo, reviewRepo, logger)
	logger.Info("Use cases initialized.")

	authHandler := delivery.NewAuthHandler(userUseCase, logger)
	productHandler := delivery.NewProductHandler(productUseCase, logger)
	orderHandler := delivery.NewOrderHandler(orderUseCase, logger)
	reviewHandler := delivery.NewReviewHandler(reviewUseCase, logger)
	faqHandler := delivery.NewFAQHandler(faqUseCase, logger)
	aiHandler := delivery.NewAIHandler(recommendUseCase, logger)
	adminHandler := delivery.NewAdminHandler(adminUseCase, orderUseCase, reviewUseCase, logger)
	logger.Info("Handlers initialized.")

	// --- Seeding ---
	if err := seed.Products(cfg.MenuFile, productRepo, logger); err != nil {
		logger.Fatalf("FATAL: Failed to seed products: %v", err)
	}
	if err := seed.Admin(cfg.AdminEmail, cfg.AdminPassword, userRepo, logger); err != nil {
		logger.Fatalf("FATAL: Failed to seed admin account: %v", err)
	}
	if err := seed.FAQs(faqRepo, logger); err != nil {
		logger.Fatalf("FATAL: Failed to seed FAQs: %v", err)
	}

	// --- Router ---
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())

	router.GET("/health", func(c *gin.Context) {
		if err := database.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.MetricsHandler())

	requireAuth := middleware.Auth(tokens, logger)
	requireAdmin := middleware.AdminOnly(logger)

	api := router.Group("/api")
	{
		authHandler.RegisterRoutes(api, requireAuth)
		productHandler.RegisterRoutes(api, requireAuth, requireAdmin)
		orderHandler.RegisterRoutes(api, requireAuth)
		reviewHandler.RegisterRoutes(api, requireAuth)
		faqHandler.RegisterRoutes(api, requireAuth, requireAdmin)
		aiHandler.RegisterRoutes(api)
		adminHandler.RegisterRoutes(api, requireAuth, requireAdmin)
	}
	logger.Info("API Routes registered.")

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
