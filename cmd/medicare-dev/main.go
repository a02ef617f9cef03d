// medicare-dev runs the in-memory stub backend locally so the CLI (or a
// frontend) can be developed without the real API.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Okojas/MediCare-doctor-appointment/internal/medicaretest"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	port := getEnv("PORT", "8080")
	secret := getEnv("MEDICARE_DEV_SECRET", "dev-secret-change-in-production")

	stub := medicaretest.New(secret)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: stub.Handler(),
	}

	go func() {
		slog.Info("stub backend starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down stub backend")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
