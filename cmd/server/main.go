package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"feinkost-backend/internal/adapters/http/middleware"
	"feinkost-backend/internal/adapters/http/routes"
	"feinkost-backend/internal/adapters/persistence/models"
	"feinkost-backend/internal/adapters/persistence/repositories"
	"feinkost-backend/internal/config"
	"feinkost-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "feinkost-backend/docs" // Swagger docs
)

// @title Feinkost Weber API
// @version 1.0
// @description Bestell-, Treue- und Marketing-API für Feinkost Weber
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email it@feinkost-weber.de

// @host shop.feinkost-weber.de
// @BasePath /api/v1
// @schemes https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed admin account, wheel config and base categories
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Start cron service for the nightly session purge (03:30)
	cronService := services.NewCronService(repositories.NewSessionRepository(db))
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Feinkost Weber API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

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
