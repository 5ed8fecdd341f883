package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"investhub/internal/adapters/http/middleware"
	"investhub/internal/adapters/http/routes"
	"investhub/internal/adapters/persistence/models"
	"investhub/internal/config"
	"investhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title InvestHub API
// @version 1.0
// @description Investment platform back-office and public API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@investhub.in

// @host api.investhub.in
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Seed default admin, plans and settings
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}

	// Session store feeds auth events to the authorization gate
	sessions := services.NewSessionStore()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "InvestHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	deps := routes.Setup(app, db, cfg, sessions)

	// Gate watch loop: resolves session events into authorization state
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go deps.Gate.Watch(watchCtx, sessions)

	// Cron: nightly token purge, monthly payout run
	if err := deps.Cron.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron jobs: %v", err)
	}
	defer deps.Cron.Stop()

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
