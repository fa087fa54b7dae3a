package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/trackarr/trackarr/internal/models"
)

type SeasonStore struct {
	db *sql.DB
}

func NewSeasonStore(db *sql.DB) *SeasonStore {
	return &SeasonStore{db: db}
}

// Add records a new season for a series. When the season number exceeds the
// series' declared total_seasons the total is raised to match, in the same
// transaction as the insert. A duplicate (series_id, number) pair maps to
// models.ErrAlreadyExists via the unique index.
func (s *SeasonStore) Add(ctx context.Context, season *models.Season) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var totalSeasons int
	err = tx.QueryRowContext(ctx,
		`SELECT total_seasons FROM series WHERE id = $1 FOR UPDATE`, season.SeriesID,
	).Scan(&totalSeasons)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("series %d: %w", season.SeriesID, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock series: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO seasons (series_id, number, episodes_count)
		VALUES ($1, $2, $3)
		RETURNING id
	`, season.SeriesID, season.Number, season.EpisodesCount).Scan(&season.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("season %d of series %d: %w", season.Number, season.SeriesID, models.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to add season: %w", err)
	}

	if season.Number > totalSeasons {
		_, err = tx.ExecContext(ctx,
			`UPDATE series SET total_seasons = $1, updated_at = $2 WHERE id = $3`,
			season.Number, time.Now().UTC(), season.SeriesID,
		)
		if err != nil {
			return fmt.Errorf("failed to raise total_seasons: %w", err)
		}
	}

	return tx.Commit()
}

// Get retrieves a season by ID.
func (s *SeasonStore) Get(ctx context.Context, id int64) (*models.Season, error) {
	season := &models.Season{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, series_id, number, episodes_count FROM seasons WHERE id = $1
	`, id).Scan(&season.ID, &season.SeriesID, &season.Number, &season.EpisodesCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("season %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	return season, nil
}

// ListBySeries returns the seasons of a series ordered by number.
func (s *SeasonStore) ListBySeries(ctx context.Context, seriesID int64) ([]models.Season, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, series_id, number, episodes_count
		FROM seasons WHERE series_id = $1 ORDER BY number
	`, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	defer rows.Close()

	seasons := []models.Season{}
	for rows.Next() {
		var season models.Season
		if err := rows.Scan(&season.ID, &season.SeriesID, &season.Number, &season.EpisodesCount); err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

// Update changes a season's number or episode count. Like Add, renumbering a
// season above the series' total_seasons raises the total in the same
// transaction.
func (s *SeasonStore) Update(ctx context.Context, season *models.Season) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var totalSeasons int
	err = tx.QueryRowContext(ctx,
		`SELECT total_seasons FROM series WHERE id = $1 FOR UPDATE`, season.SeriesID,
	).Scan(&totalSeasons)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("series %d: %w", season.SeriesID, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock series: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE seasons SET number = $1, episodes_count = $2 WHERE id = $3
	`, season.Number, season.EpisodesCount, season.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("season %d of series %d: %w", season.Number, season.SeriesID, models.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to update season: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("season %d: %w", season.ID, models.ErrNotFound)
	}

	if season.Number > totalSeasons {
		_, err = tx.ExecContext(ctx,
			`UPDATE series SET total_seasons = $1, updated_at = $2 WHERE id = $3`,
			season.Number, time.Now().UTC(), season.SeriesID,
		)
		if err != nil {
			return fmt.Errorf("failed to raise total_seasons: %w", err)
		}
	}

	return tx.Commit()
}

// Delete removes a season.
func (s *SeasonStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM seasons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete season: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("season %d: %w", id, models.ErrNotFound)
	}
	return nil
}
