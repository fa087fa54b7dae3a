package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/trackarr/trackarr/internal/models"
)

type MovieStore struct {
	db *sql.DB
}

func NewMovieStore(db *sql.DB) *MovieStore {
	return &MovieStore{db: db}
}

// Add inserts a new movie into the catalog.
func (s *MovieStore) Add(ctx context.Context, movie *models.Movie) error {
	query := `
		INSERT INTO movies (title, genres, release_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, created_at, updated_at
	`
	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, query,
		movie.Title, pq.Array(movie.Genres), movie.ReleaseYear, now,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to add movie: %w", err)
	}
	return nil
}

// Get retrieves a movie by ID.
func (s *MovieStore) Get(ctx context.Context, id int64) (*models.Movie, error) {
	query := `
		SELECT id, title, genres, release_year, created_at, updated_at
		FROM movies WHERE id = $1
	`
	movie := &models.Movie{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&movie.ID, &movie.Title, pq.Array(&movie.Genres),
		&movie.ReleaseYear, &movie.CreatedAt, &movie.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("movie %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

// List returns all movies in the catalog.
func (s *MovieStore) List(ctx context.Context) ([]models.Movie, error) {
	query := `
		SELECT id, title, genres, release_year, created_at, updated_at
		FROM movies ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		var movie models.Movie
		if err := rows.Scan(
			&movie.ID, &movie.Title, pq.Array(&movie.Genres),
			&movie.ReleaseYear, &movie.CreatedAt, &movie.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

// Update overwrites a movie's descriptive fields.
func (s *MovieStore) Update(ctx context.Context, movie *models.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, genres = $2, release_year = $3, updated_at = $4
		WHERE id = $5
		RETURNING updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		movie.Title, pq.Array(movie.Genres), movie.ReleaseYear, time.Now().UTC(), movie.ID,
	).Scan(&movie.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("movie %d: %w", movie.ID, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}
	return nil
}

// Delete removes a movie. Watch entries referencing it go with it.
func (s *MovieStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("movie %d: %w", id, models.ErrNotFound)
	}
	return nil
}
