package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/http/middleware"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/http/routes"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/repositories"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/storage"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/config"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/services"
)

func main() {
	// Load configuration (fatal on missing signing key)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to document store
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to document store: %v", err)
	}
	defer config.CloseDatabase()

	// Seed indexes + bootstrap admin
	seeder := config.NewSeeder(db, cfg)
	if err := seeder.Run(context.Background()); err != nil {
		log.Printf("⚠️ Warning: Failed to run seeders: %v", err)
	}

	// Connect to object store
	store, err := storage.NewS3Store(context.Background(), storage.S3Config{
		Region:    cfg.Storage.Region,
		Bucket:    cfg.Storage.Bucket,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize object store: %v", err)
	}

	// Start nightly integrity scan for unresolvable document records
	integrityService := services.NewIntegrityService(repositories.NewDocumentRepository(db))
	integrityService.Start()
	defer integrityService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "BizLoan DMS API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db, store and cfg for dependency injection)
	routes.Setup(app, db, store, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
