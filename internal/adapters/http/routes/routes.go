package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/http/handlers"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/http/middleware"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/repositories"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/storage"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/config"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/services"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *mongo.Database, store storage.ObjectStore, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	docRepo := repositories.NewDocumentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	docService := services.NewDocumentService(docRepo, store, cfg.Storage.SignedURLTTL)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	docHandler := handlers.NewDocumentHandler(docService)
	adminHandler := handlers.NewAdminHandler(userService, docService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes
	auth := apiV1.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Document routes (authenticated)
	documents := apiV1.Group("/documents", middleware.AuthMiddleware(cfg))
	documents.Get("/", docHandler.List)
	documents.Get("/:id/download", docHandler.Download)

	// Admin routes (authenticated + persisted-role re-check)
	admin := apiV1.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly(userRepo))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Patch("/users/:id", adminHandler.UpdateUser)
	admin.Post("/loan-access", adminHandler.LoanAccess)
	admin.Get("/documents", adminHandler.ListDocuments)
}
