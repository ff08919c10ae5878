package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"esavers-backend/internal/adapters/http/middleware"
	"esavers-backend/internal/adapters/http/routes"
	"esavers-backend/internal/adapters/persistence/store"
	"esavers-backend/internal/config"
	"esavers-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Open the blob store
	blob, closeBlob, err := openBlobStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open blob store: %v", err)
	}
	defer closeBlob()

	// Load the persisted snapshot (falls back to empty state)
	st := store.New(ctx, blob)
	log.Printf("✅ State loaded [driver: %s]", cfg.Storage.Driver)

	// Seed bootstrap admin when the user list is empty
	seeder := config.NewSeeder(st)
	if err := seeder.Run(ctx); err != nil {
		log.Printf("⚠️ Warning: Failed to seed state: %v", err)
	}

	// Start snapshot backup scheduler
	backupService := services.NewBackupService(st, blob, cfg)
	backupService.Start()
	defer backupService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Emotional Savers API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, st, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// openBlobStore opens the configured blob store backend
func openBlobStore(ctx context.Context, cfg *config.Config) (store.BlobStore, func(), error) {
	switch cfg.Storage.Driver {
	case "redis":
		rs, err := store.NewRedisStore(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	default:
		fs, err := store.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
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
