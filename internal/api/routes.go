package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) http.Handler {
	r := mux.NewRouter()

	// Root handler
	r.HandleFunc("/", handler.RootHandler).Methods("GET")

	// API v1 routes
	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Watchlist & progress (identity via X-User-Id header)
	api.HandleFunc("/me/watchlist", handler.GetMyWatchlist).Methods("GET")
	api.HandleFunc("/watchlist/movies/{movieId}", handler.AddMovieToWatchlist).Methods("POST")
	api.HandleFunc("/watchlist/series/{seriesId}", handler.AddSeriesToWatchlist).Methods("POST")
	api.HandleFunc("/progress/series/{seriesId}", handler.UpdateSeriesProgress).Methods("PATCH")

	// Movies
	api.HandleFunc("/movies", handler.ListMovies).Methods("GET")
	api.HandleFunc("/movies", handler.CreateMovie).Methods("POST")
	api.HandleFunc("/movies/{id}", handler.GetMovie).Methods("GET")
	api.HandleFunc("/movies/{id}", handler.UpdateMovie).Methods("PUT")
	api.HandleFunc("/movies/{id}", handler.DeleteMovie).Methods("DELETE")

	// Series
	api.HandleFunc("/series", handler.ListSeries).Methods("GET")
	api.HandleFunc("/series", handler.CreateSeries).Methods("POST")
	api.HandleFunc("/series/{id}", handler.GetSeries).Methods("GET")
	api.HandleFunc("/series/{id}", handler.UpdateSeries).Methods("PUT")
	api.HandleFunc("/series/{id}", handler.DeleteSeries).Methods("DELETE")

	// Seasons
	api.HandleFunc("/series/{id}/seasons", handler.ListSeasons).Methods("GET")
	api.HandleFunc("/series/{id}/seasons", handler.AddSeason).Methods("POST")
	api.HandleFunc("/seasons/{id}", handler.UpdateSeason).Methods("PUT")
	api.HandleFunc("/seasons/{id}", handler.DeleteSeason).Methods("DELETE")

	// Users
	api.HandleFunc("/users", handler.ListUsers).Methods("GET")
	api.HandleFunc("/users", handler.CreateUser).Methods("POST")
	api.HandleFunc("/users/{id}", handler.GetUser).Methods("GET")
	api.HandleFunc("/users/{id}", handler.UpdateUser).Methods("PUT")
	api.HandleFunc("/users/{id}", handler.DeleteUser).Methods("DELETE")

	// Enable CORS
	r.Use(corsMiddleware)

	// Logging middleware
	r.Use(loggingMiddleware)

	return r
}
