package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/trackarr/trackarr/internal/models"
)

type SeriesStore struct {
	db *sql.DB
}

func NewSeriesStore(db *sql.DB) *SeriesStore {
	return &SeriesStore{db: db}
}

// Add inserts a new series into the catalog.
func (s *SeriesStore) Add(ctx context.Context, series *models.Series) error {
	query := `
		INSERT INTO series (title, total_seasons, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id, created_at, updated_at
	`
	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, query,
		series.Title, series.TotalSeasons, now,
	).Scan(&series.ID, &series.CreatedAt, &series.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to add series: %w", err)
	}
	return nil
}

// Get retrieves a series by ID, without its seasons.
func (s *SeriesStore) Get(ctx context.Context, id int64) (*models.Series, error) {
	query := `
		SELECT id, title, total_seasons, created_at, updated_at
		FROM series WHERE id = $1
	`
	series := &models.Series{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&series.ID, &series.Title, &series.TotalSeasons,
		&series.CreatedAt, &series.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("series %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}
	return series, nil
}

// GetWithSeasons retrieves a series and its seasons ordered by number.
func (s *SeriesStore) GetWithSeasons(ctx context.Context, id int64) (*models.Series, error) {
	series, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, series_id, number, episodes_count
		FROM seasons WHERE series_id = $1 ORDER BY number
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var season models.Season
		if err := rows.Scan(&season.ID, &season.SeriesID, &season.Number, &season.EpisodesCount); err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		series.Seasons = append(series.Seasons, season)
	}
	return series, rows.Err()
}

// List returns all series in the catalog.
func (s *SeriesStore) List(ctx context.Context) ([]models.Series, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, total_seasons, created_at, updated_at
		FROM series ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer rows.Close()

	list := []models.Series{}
	for rows.Next() {
		var series models.Series
		if err := rows.Scan(
			&series.ID, &series.Title, &series.TotalSeasons,
			&series.CreatedAt, &series.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		list = append(list, series)
	}
	return list, rows.Err()
}

// Update overwrites a series' fields. Lowering total_seasons below the number
// of recorded seasons is rejected, checked and applied in one transaction.
func (s *SeriesStore) Update(ctx context.Context, series *models.Series) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var recorded int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seasons WHERE series_id = $1`, series.ID,
	).Scan(&recorded)
	if err != nil {
		return fmt.Errorf("failed to count seasons: %w", err)
	}
	if series.TotalSeasons < recorded {
		return models.NewValidationError("total_seasons",
			fmt.Sprintf("cannot be lower than the %d seasons already recorded", recorded))
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE series SET title = $1, total_seasons = $2, updated_at = $3
		WHERE id = $4
		RETURNING updated_at
	`, series.Title, series.TotalSeasons, time.Now().UTC(), series.ID).Scan(&series.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("series %d: %w", series.ID, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update series: %w", err)
	}

	return tx.Commit()
}

// Delete removes a series. Seasons and watch entries cascade at the schema level.
func (s *SeriesStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM series WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("series %d: %w", id, models.ErrNotFound)
	}
	return nil
}
