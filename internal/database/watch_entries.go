package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trackarr/trackarr/internal/models"
)

type WatchEntryStore struct {
	db *sql.DB
}

func NewWatchEntryStore(db *sql.DB) *WatchEntryStore {
	return &WatchEntryStore{db: db}
}

const watchEntryColumns = `
	id, user_id, content_type, content_id, movie_id, series_id,
	status, current_season, current_episode, watched_episodes, total_episodes,
	created_at, updated_at
`

func scanWatchEntry(row interface{ Scan(...any) error }) (*models.WatchEntry, error) {
	entry := &models.WatchEntry{}
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.ContentType, &entry.ContentID,
		&entry.MovieID, &entry.SeriesID,
		&entry.Status, &entry.CurrentSeason, &entry.CurrentEpisode,
		&entry.WatchedEpisodes, &entry.TotalEpisodes,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Create inserts a new watch entry. The unique index on
// (user_id, content_type, content_id) is the authoritative duplicate guard;
// a violation maps to models.ErrAlreadyExists, so two concurrent creates for
// the same pair cannot both succeed.
func (s *WatchEntryStore) Create(ctx context.Context, entry *models.WatchEntry) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO watch_entries (
			user_id, content_type, content_id, movie_id, series_id,
			status, current_season, current_episode, watched_episodes, total_episodes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`,
		entry.UserID, entry.ContentType, entry.ContentID, entry.MovieID, entry.SeriesID,
		entry.Status, entry.CurrentSeason, entry.CurrentEpisode,
		entry.WatchedEpisodes, entry.TotalEpisodes,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("watch entry for %s %d: %w", entry.ContentType, entry.ContentID, models.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to create watch entry: %w", err)
	}
	return nil
}

// GetByUserAndContent looks up the single entry for a (user, content) pair.
func (s *WatchEntryStore) GetByUserAndContent(ctx context.Context, userID int64, contentType string, contentID int64) (*models.WatchEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+watchEntryColumns+`
		FROM watch_entries
		WHERE user_id = $1 AND content_type = $2 AND content_id = $3
	`, userID, contentType, contentID)

	entry, err := scanWatchEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("watch entry for %s %d: %w", contentType, contentID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get watch entry: %w", err)
	}
	return entry, nil
}

// ListByUser returns all entries owned by a user, most recently updated first.
func (s *WatchEntryStore) ListByUser(ctx context.Context, userID int64) ([]models.WatchEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+watchEntryColumns+`
		FROM watch_entries WHERE user_id = $1 ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watch entries: %w", err)
	}
	defer rows.Close()

	entries := []models.WatchEntry{}
	for rows.Next() {
		entry, err := scanWatchEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watch entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Update persists the mutable progress fields of an entry.
func (s *WatchEntryStore) Update(ctx context.Context, entry *models.WatchEntry) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE watch_entries
		SET status = $1, current_season = $2, current_episode = $3,
		    watched_episodes = $4, total_episodes = $5, updated_at = $6
		WHERE id = $7
	`,
		entry.Status, entry.CurrentSeason, entry.CurrentEpisode,
		entry.WatchedEpisodes, entry.TotalEpisodes, entry.UpdatedAt, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update watch entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("watch entry %d: %w", entry.ID, models.ErrNotFound)
	}
	return nil
}
