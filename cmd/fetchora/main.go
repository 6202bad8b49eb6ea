package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fetchora/internal/collector"
	"fetchora/internal/pipeline"
	"fetchora/internal/sentiment"
	"fetchora/internal/server"
)

func main() {
	// 1. Setup
	godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Initialize Collector (Using Factory)
	coll, err := collector.NewCollector()
	if err != nil {
		logger.Error("Failed to initialize collector", "error", err)
		os.Exit(1)
	}
	logger.Info("Collector initialized", "mode", os.Getenv("COLLECTOR_MODE"))

	// 3. Build Pipeline
	// The VADER lexicon loads here, once; every request shares the scorer.
	scorer := sentiment.NewVADER()
	p := pipeline.New(coll, scorer)

	// 4. HTTP Server
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           server.New(p).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Exhaustive fetches of large videos can take minutes.
		WriteTimeout: 10 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "err", err)
			stop()
		}
	}()

	// 5. Graceful Shutdown
	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
