package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/trackarr/trackarr/internal/api"
	"github.com/trackarr/trackarr/internal/config"
	"github.com/trackarr/trackarr/internal/database"
	"github.com/trackarr/trackarr/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	log.Println("Starting TrackArr API Server...")

	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connection established")

	// Initialize stores
	movieStore := database.NewMovieStore(db)
	seriesStore := database.NewSeriesStore(db)
	seasonStore := database.NewSeasonStore(db)
	userStore := database.NewUserStore(db)
	entryStore := database.NewWatchEntryStore(db)
	log.Println("Database stores initialized")

	// Progress service
	progressService := services.NewProgressService(userStore, movieStore, seriesStore, seasonStore, entryStore)

	// API handler and routes
	handler := api.NewHandler(
		movieStore,
		seriesStore,
		seasonStore,
		userStore,
		progressService,
		func(ctx context.Context) error { return database.Health(ctx, db) },
	)
	router := api.SetupRoutes(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
