package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"                                            // Framework web Fiber
	v1 "github.com/rakaarfi/roster-system-be/internal/api/v1"                // Routing API v1
	"github.com/rakaarfi/roster-system-be/internal/api/v1/handlers"          // Handler API v1
	"github.com/rakaarfi/roster-system-be/internal/config"                   // Konfigurasi (godotenv + viper)
	"github.com/rakaarfi/roster-system-be/internal/database"                 // Koneksi database
	applogger "github.com/rakaarfi/roster-system-be/internal/logger"         // Setup logger (Zerolog)
	appmiddleware "github.com/rakaarfi/roster-system-be/internal/middleware" // Middleware global
	"github.com/rakaarfi/roster-system-be/internal/notify"                   // Push notification relay
	"github.com/rakaarfi/roster-system-be/internal/repository"               // Document store
	"github.com/rakaarfi/roster-system-be/internal/utils"                    // JWT
	zlog "github.com/rs/zerolog/log"                                         // Logger global Zerolog
)

// main adalah fungsi entry point aplikasi Go.
func main() {
	// --- Langkah 0: Load Konfigurasi ---
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Langkah 1: Setup Logger (Zerolog) ---
	logCloser := applogger.SetupLogger(cfg)
	if logCloser != nil {
		defer func() {
			zlog.Info().Msg("Closing log file...")
			if err := logCloser.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "[ERROR] Failed to close log file: %v\n", err)
			}
		}()
	}
	zlog.Info().Str("env", cfg.Environment).Str("store", cfg.StoreDriver).Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Langkah 2: Document store ---
	staffRepo, storeCloser, err := openStore(ctx, cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Could not open the document store")
	}
	defer storeCloser.Close()
	zlog.Info().Str("driver", cfg.StoreDriver).Msg("Document store ready")

	if err := ensureBootstrapAdmin(ctx, staffRepo, cfg); err != nil {
		zlog.Fatal().Err(err).Msg("Could not create bootstrap admin")
	}

	// --- Langkah 3: Auth, notifikasi dan handler ---
	utils.InitJWT(cfg.JWTSecret, cfg.JWTTTL())
	notifier := notify.NewHTTPNotifier(cfg.NotifyURL, cfg.NotifyTimeout())
	policy := cfg.Policy()

	authHandler := handlers.NewAuthHandler(staffRepo)
	adminHandler := handlers.NewAdminHandler(staffRepo, policy, notifier, cfg.NotifyTitle)
	userHandler := handlers.NewUserHandler(staffRepo, policy)
	zlog.Info().Msg("Handlers initialized")

	// --- Langkah 4: Setup Aplikasi Fiber ---
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		Immutable:    true,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	appmiddleware.SetupGlobalMiddleware(app, cfg)
	v1.SetupRoutes(app, authHandler, adminHandler, userHandler)
	zlog.Info().Msg("API v1 routes registered")

	// --- Langkah 5: Start Server HTTP ---
	go func() {
		<-ctx.Done()
		zlog.Info().Msg("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zlog.Error().Err(err).Msg("Error during server shutdown")
		}
	}()

	zlog.Info().Msgf("Server is starting on port %s...", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to start server")
	}

	// Tunggu notifikasi yang masih berjalan
	notifier.Wait()
	zlog.Info().Msg("Server stopped")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openStore builds the staff repository for cfg.StoreDriver.
func openStore(ctx context.Context, cfg *config.Config) (repository.StaffRepository, io.Closer, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewStaffPgRepository(pool), closerFunc(func() error { pool.Close(); return nil }), nil
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewStaffSQLiteRepository(db), db, nil
	case config.DriverMemory:
		zlog.Warn().Msg("Using in-memory store, data is lost on restart")
		return repository.NewStaffMemoryRepository(), closerFunc(func() error { return nil }), nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
