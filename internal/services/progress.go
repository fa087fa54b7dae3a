// Package services holds the business orchestration between the API layer and
// the database stores.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trackarr/trackarr/internal/models"
	"github.com/trackarr/trackarr/internal/progress"
)

// Store interfaces cover exactly what the progress service needs; the
// database package's concrete stores satisfy them.
type UserGetter interface {
	Get(ctx context.Context, id int64) (*models.User, error)
}

type MovieGetter interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
}

type SeriesGetter interface {
	Get(ctx context.Context, id int64) (*models.Series, error)
}

type SeasonLister interface {
	ListBySeries(ctx context.Context, seriesID int64) ([]models.Season, error)
}

type WatchEntryStore interface {
	Create(ctx context.Context, entry *models.WatchEntry) error
	GetByUserAndContent(ctx context.Context, userID int64, contentType string, contentID int64) (*models.WatchEntry, error)
	ListByUser(ctx context.Context, userID int64) ([]models.WatchEntry, error)
	Update(ctx context.Context, entry *models.WatchEntry) error
}

// ProgressService coordinates watchlist and progress operations across the
// user registry, the catalog and the watch entry store.
type ProgressService struct {
	users   UserGetter
	movies  MovieGetter
	series  SeriesGetter
	seasons SeasonLister
	entries WatchEntryStore
}

func NewProgressService(users UserGetter, movies MovieGetter, series SeriesGetter, seasons SeasonLister, entries WatchEntryStore) *ProgressService {
	return &ProgressService{
		users:   users,
		movies:  movies,
		series:  series,
		seasons: seasons,
		entries: entries,
	}
}

// ListWatchlist returns every entry owned by the user, each with its computed
// percentage.
func (s *ProgressService) ListWatchlist(ctx context.Context, userID int64) ([]models.WatchEntryView, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.WatchEntryView, 0, len(entries))
	for i := range entries {
		views = append(views, models.NewWatchEntryView(&entries[i]))
	}
	return views, nil
}

// AddMovie creates a fresh watch entry for a movie. Movies carry no episode
// counts, so the entry stays in the completed/not-completed binary.
func (s *ProgressService) AddMovie(ctx context.Context, userID, movieID int64) (*models.WatchEntryView, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.movies.Get(ctx, movieID); err != nil {
		return nil, err
	}
	if err := s.checkNoEntry(ctx, userID, models.ContentTypeMovie, movieID); err != nil {
		return nil, err
	}

	entry := &models.WatchEntry{
		UserID:      userID,
		ContentType: models.ContentTypeMovie,
		ContentID:   movieID,
		MovieID:     &movieID,
		Status:      models.StatusWatching,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	view := models.NewWatchEntryView(entry)
	return &view, nil
}

// AddSeries creates a fresh watch entry for a series, seeding the episode
// total from the recorded seasons. A zero sum counts as unknown, not zero.
func (s *ProgressService) AddSeries(ctx context.Context, userID, seriesID int64) (*models.WatchEntryView, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.series.Get(ctx, seriesID); err != nil {
		return nil, err
	}
	if err := s.checkNoEntry(ctx, userID, models.ContentTypeSeries, seriesID); err != nil {
		return nil, err
	}

	seasons, err := s.seasons.ListBySeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	var totalEpisodes *int
	if sum := sumEpisodes(seasons); sum > 0 {
		totalEpisodes = &sum
	}
	var currentSeason *int
	if len(seasons) > 0 {
		one := 1
		currentSeason = &one
	}
	zero := 0

	entry := &models.WatchEntry{
		UserID:         userID,
		ContentType:    models.ContentTypeSeries,
		ContentID:      seriesID,
		SeriesID:       &seriesID,
		Status:         models.StatusWatching,
		CurrentSeason:  currentSeason,
		CurrentEpisode: &zero,
		TotalEpisodes:  totalEpisodes,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	view := models.NewWatchEntryView(entry)
	return &view, nil
}

// UpdateSeriesProgress validates and applies a partial progress update to the
// user's entry for a series. Either every patched field lands or none does.
func (s *ProgressService) UpdateSeriesProgress(ctx context.Context, userID, seriesID int64, patch *models.ProgressPatch) (*models.WatchEntryView, error) {
	entry, err := s.entries.GetByUserAndContent(ctx, userID, models.ContentTypeSeries, seriesID)
	if err != nil {
		return nil, err
	}

	series, err := s.series.Get(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	seasons, err := s.seasons.ListBySeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	if err := progress.ApplyPatch(entry, patch, series, seasons, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}

	view := models.NewWatchEntryView(entry)
	return &view, nil
}

// checkNoEntry is the pre-insert duplicate check. The unique index backs it
// up against concurrent creates.
func (s *ProgressService) checkNoEntry(ctx context.Context, userID int64, contentType string, contentID int64) error {
	_, err := s.entries.GetByUserAndContent(ctx, userID, contentType, contentID)
	if err == nil {
		return fmt.Errorf("watch entry for %s %d: %w", contentType, contentID, models.ErrAlreadyExists)
	}
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	return err
}

func sumEpisodes(seasons []models.Season) int {
	total := 0
	for _, season := range seasons {
		total += season.EpisodesCount
	}
	return total
}
