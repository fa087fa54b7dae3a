package models

import (
	"math"
	"time"
)

// Content types a watch entry can point at.
const (
	ContentTypeMovie  = "movie"
	ContentTypeSeries = "series"
)

// Watch entry statuses.
const (
	StatusWatching  = "watching"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is one of the known watch statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusWatching, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// WatchEntry ties one user to one piece of content and its viewing progress.
// Exactly one of MovieID/SeriesID is set, matching ContentType.
type WatchEntry struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	ContentType     string    `json:"content_type"`
	ContentID       int64     `json:"content_id"`
	MovieID         *int64    `json:"movie_id,omitempty"`
	SeriesID        *int64    `json:"series_id,omitempty"`
	Status          string    `json:"status"`
	CurrentSeason   *int      `json:"current_season"`
	CurrentEpisode  *int      `json:"current_episode"`
	WatchedEpisodes int       `json:"watched_episodes"`
	TotalEpisodes   *int      `json:"total_episodes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PercentageWatched returns the completion percentage in [0, 100], rounded to
// two decimals. With an unknown or zero episode total the entry is either
// fully completed or not started at all.
func (e *WatchEntry) PercentageWatched() float64 {
	if e.TotalEpisodes == nil || *e.TotalEpisodes <= 0 {
		if e.Status == StatusCompleted {
			return 100.0
		}
		return 0.0
	}

	pct := 100.0 * float64(e.WatchedEpisodes) / float64(*e.TotalEpisodes)
	pct = math.Round(pct*100) / 100
	if pct < 0 {
		return 0.0
	}
	if pct > 100 {
		return 100.0
	}
	return pct
}

// MarkAsWatched completes the entry. Idempotent.
func (e *WatchEntry) MarkAsWatched(now time.Time) {
	if e.TotalEpisodes != nil && e.WatchedEpisodes < *e.TotalEpisodes {
		e.WatchedEpisodes = *e.TotalEpisodes
	}
	e.Status = StatusCompleted
	e.UpdatedAt = now
}

// WatchEntryView is the API representation of an entry, carrying the
// computed percentage alongside the stored fields.
type WatchEntryView struct {
	WatchEntry
	Percentage float64 `json:"percentage"`
}

// NewWatchEntryView wraps an entry with its computed percentage.
func NewWatchEntryView(e *WatchEntry) WatchEntryView {
	return WatchEntryView{WatchEntry: *e, Percentage: e.PercentageWatched()}
}
