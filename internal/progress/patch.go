// Package progress holds the watch-progress update rules for series entries.
package progress

import (
	"fmt"
	"time"

	"github.com/trackarr/trackarr/internal/models"
)

// ApplyPatch validates and applies a partial progress update to entry.
// Fields are checked in a fixed order against a working copy, so a field later
// in the order sees the values already updated by the same patch. On the first
// validation failure the entry is left untouched and a field-named
// *models.ValidationError is returned; on success all fields land together and
// updated_at is refreshed.
func ApplyPatch(entry *models.WatchEntry, patch *models.ProgressPatch, series *models.Series, seasons []models.Season, now time.Time) error {
	next := *entry

	if patch.CurrentSeason.Set {
		if v := patch.CurrentSeason.Value; v != nil {
			if *v < 1 {
				return models.NewValidationError("current_season", "must be a positive integer")
			}
			if series.TotalSeasons > 0 && *v > series.TotalSeasons {
				return models.NewValidationError("current_season",
					fmt.Sprintf("exceeds the series' %d seasons", series.TotalSeasons))
			}
		}
		next.CurrentSeason = patch.CurrentSeason.Value
	}

	if patch.CurrentEpisode.Set {
		if v := patch.CurrentEpisode.Value; v != nil {
			if *v < 0 {
				return models.NewValidationError("current_episode", "must be a non-negative integer")
			}
			if *v > 0 && next.CurrentSeason != nil {
				if s := findSeason(seasons, *next.CurrentSeason); s != nil && *v > s.EpisodesCount {
					return models.NewValidationError("current_episode",
						fmt.Sprintf("season %d only has %d episodes", s.Number, s.EpisodesCount))
				}
			}
		}
		next.CurrentEpisode = patch.CurrentEpisode.Value
	}

	if patch.TotalEpisodes.Set {
		if v := patch.TotalEpisodes.Value; v != nil && *v < 0 {
			return models.NewValidationError("total_episodes", "must be a non-negative integer")
		}
		next.TotalEpisodes = patch.TotalEpisodes.Value
	}

	if patch.WatchedEpisodes.Set {
		if v := patch.WatchedEpisodes.Value; v != nil {
			if *v < 0 {
				return models.NewValidationError("watched_episodes", "must be a non-negative integer")
			}
			if next.TotalEpisodes != nil && *v > *next.TotalEpisodes {
				return models.NewValidationError("watched_episodes",
					fmt.Sprintf("exceeds total_episodes (%d)", *next.TotalEpisodes))
			}
			next.WatchedEpisodes = *v
		} else {
			next.WatchedEpisodes = 0
		}
	}

	if patch.Status.Set {
		v := patch.Status.Value
		if v == nil || !models.ValidStatus(*v) {
			return models.NewValidationError("status", "must be one of watching, paused, completed")
		}
		next.Status = *v
		if *v == models.StatusCompleted {
			next.MarkAsWatched(now)
		}
	}

	next.UpdatedAt = now
	*entry = next
	return nil
}

func findSeason(seasons []models.Season, number int) *models.Season {
	for i := range seasons {
		if seasons[i].Number == number {
			return &seasons[i]
		}
	}
	return nil
}
