// Package main is the entry point for the household tracker API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ZawaReck/household/config"
	"github.com/ZawaReck/household/internal/application/usecase/history"
	"github.com/ZawaReck/household/internal/application/usecase/summary"
	"github.com/ZawaReck/household/internal/infra/db"
	"github.com/ZawaReck/household/internal/infra/server/router"
	"github.com/ZawaReck/household/internal/integration/entrypoint/controller"
	"github.com/ZawaReck/household/internal/integration/persistence"
	"github.com/ZawaReck/household/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting household tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"database", cfg.Database.Path,
	)

	// Open the local database
	database, err := db.NewSQLiteConnection(&cfg.Database)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(&model.TransactionModel{}); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(database.DB())

	// Create use cases
	listUseCase := history.NewListTransactionsUseCase(transactionRepo)
	summaryUseCase := summary.NewMonthlySummaryUseCase(transactionRepo)
	exportUseCase := history.NewExportTransactionsUseCase(transactionRepo)

	// Create controllers
	healthController := controller.NewHealthController(database.HealthCheck)
	entryController := controller.NewEntryController(transactionRepo)
	historyController := controller.NewHistoryController(listUseCase, summaryUseCase, exportUseCase)

	// Setup router
	r := router.NewRouter(logger, healthController, entryController, historyController)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
