// @title        Blog API
// @version      1.0
// @description  Users, posts and embedded comments over a document store.
// @BasePath     /api
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fkhayef/blog/internal/api"
	"github.com/fkhayef/blog/internal/config"
	"github.com/fkhayef/blog/internal/database"
	"github.com/fkhayef/blog/internal/user"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run serves until a signal arrives or the listener fails. Deferred cleanup
// runs before main decides the exit status.
func run() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize the document store; without one the service runs degraded
	ctx := context.Background()
	store := database.OpenOrOffline(ctx, cfg)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := store.Ping(ctx); err == nil {
		log.Printf("Connected to database %s", store.Name())
		if err := user.NewRepository(store).EnsureIndexes(ctx); err != nil {
			log.Printf("Failed to create user indexes: %v", err)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(cfg, store),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case <-stop:
		log.Println("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	return nil
}
