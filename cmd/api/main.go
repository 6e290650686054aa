package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/crucial707/fittrack/internal/config"
	"github.com/crucial707/fittrack/internal/db"
	"github.com/crucial707/fittrack/internal/repo"
	"github.com/crucial707/fittrack/internal/scheduler"
	"github.com/crucial707/fittrack/internal/timestamp"
)

func main() {

	// Load configuration
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	// Connect to database FIRST
	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)

	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	// Apply migrations
	if err := db.Run(db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Background stats refresher
	statsCron, err := scheduler.Run(repo.NewUserRepo(database), repo.NewExerciseRepo(database))
	if err != nil {
		log.Fatalf("Failed to start stats scheduler: %v", err)
	}
	defer statsCron.Stop()

	resolver := timestamp.NewService(cfg.TimestampAPIURL)
	router := newRouter(database, cfg, resolver)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server LAST
	slog.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

// setupLogger installs the default slog handler in text or JSON format.
func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
