package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/trackarr/trackarr/internal/config"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	log.Println("TrackArr Database Migration Tool")

	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down]")
	}

	command := os.Args[1]

	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	switch command {
	case "up":
		if err := migrateUp(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migration completed successfully")
	case "down":
		if err := migrateDown(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Rollback completed successfully")
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func migrateUp(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			email VARCHAR(255),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS movies (
			id SERIAL PRIMARY KEY,
			title VARCHAR(150) NOT NULL,
			genres TEXT[] NOT NULL DEFAULT '{}',
			release_year INTEGER,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS series (
			id SERIAL PRIMARY KEY,
			title VARCHAR(150) NOT NULL,
			total_seasons INTEGER NOT NULL DEFAULT 1 CHECK (total_seasons >= 1),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS seasons (
			id SERIAL PRIMARY KEY,
			series_id INTEGER NOT NULL REFERENCES series(id) ON DELETE CASCADE,
			number INTEGER NOT NULL CHECK (number >= 1),
			episodes_count INTEGER NOT NULL DEFAULT 0 CHECK (episodes_count >= 0),
			UNIQUE (series_id, number)
		)`,
		`CREATE TABLE IF NOT EXISTS watch_entries (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content_type VARCHAR(10) NOT NULL CHECK (content_type IN ('movie', 'series')),
			content_id INTEGER NOT NULL,
			movie_id INTEGER REFERENCES movies(id) ON DELETE CASCADE,
			series_id INTEGER REFERENCES series(id) ON DELETE CASCADE,
			status VARCHAR(20) NOT NULL DEFAULT 'watching'
				CHECK (status IN ('watching', 'paused', 'completed')),
			current_season INTEGER CHECK (current_season >= 1),
			current_episode INTEGER CHECK (current_episode >= 0),
			watched_episodes INTEGER NOT NULL DEFAULT 0 CHECK (watched_episodes >= 0),
			total_episodes INTEGER CHECK (total_episodes >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, content_type, content_id),
			CHECK (
				(content_type = 'movie' AND movie_id IS NOT NULL AND series_id IS NULL) OR
				(content_type = 'series' AND series_id IS NOT NULL AND movie_id IS NULL)
			)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_watch_entries_user ON watch_entries(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_seasons_series ON seasons(series_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func migrateDown(db *sql.DB) error {
	queries := []string{
		`DROP TABLE IF EXISTS watch_entries`,
		`DROP TABLE IF EXISTS seasons`,
		`DROP TABLE IF EXISTS series`,
		`DROP TABLE IF EXISTS movies`,
		`DROP TABLE IF EXISTS users`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}
