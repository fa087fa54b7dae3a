package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestPercentageWatched(t *testing.T) {
	tests := []struct {
		name    string
		watched int
		total   *int
		status  string
		want    float64
	}{
		{"half watched", 9, intPtr(18), StatusWatching, 50.0},
		{"rounds to two decimals", 1, intPtr(3), StatusWatching, 33.33},
		{"all watched", 18, intPtr(18), StatusWatching, 100.0},
		{"nothing watched", 0, intPtr(18), StatusWatching, 0.0},
		{"clamped above 100", 20, intPtr(18), StatusWatching, 100.0},
		{"unknown total not completed", 5, nil, StatusWatching, 0.0},
		{"unknown total completed", 0, nil, StatusCompleted, 100.0},
		{"zero total not completed", 3, intPtr(0), StatusPaused, 0.0},
		{"zero total completed", 0, intPtr(0), StatusCompleted, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &WatchEntry{
				Status:          tt.status,
				WatchedEpisodes: tt.watched,
				TotalEpisodes:   tt.total,
			}
			assert.InDelta(t, tt.want, entry.PercentageWatched(), 0.001)
		})
	}
}

func TestPercentageWatchedAlwaysInRange(t *testing.T) {
	for total := 1; total <= 25; total++ {
		for watched := 0; watched <= total; watched++ {
			entry := &WatchEntry{
				Status:          StatusWatching,
				WatchedEpisodes: watched,
				TotalEpisodes:   intPtr(total),
			}
			pct := entry.PercentageWatched()
			assert.GreaterOrEqual(t, pct, 0.0)
			assert.LessOrEqual(t, pct, 100.0)
		}
	}
}

func TestMarkAsWatched(t *testing.T) {
	now := time.Now().UTC()
	entry := &WatchEntry{
		Status:          StatusWatching,
		WatchedEpisodes: 3,
		TotalEpisodes:   intPtr(18),
	}

	entry.MarkAsWatched(now)

	assert.Equal(t, StatusCompleted, entry.Status)
	assert.Equal(t, 18, entry.WatchedEpisodes)
	assert.Equal(t, now, entry.UpdatedAt)
	assert.InDelta(t, 100.0, entry.PercentageWatched(), 0.001)
}

func TestMarkAsWatchedIdempotent(t *testing.T) {
	entry := &WatchEntry{
		Status:          StatusWatching,
		WatchedEpisodes: 3,
		TotalEpisodes:   intPtr(18),
	}

	entry.MarkAsWatched(time.Now().UTC())
	first := *entry
	entry.MarkAsWatched(first.UpdatedAt)

	assert.Equal(t, first, *entry)
}

func TestMarkAsWatchedUnknownTotal(t *testing.T) {
	entry := &WatchEntry{Status: StatusWatching, WatchedEpisodes: 4}

	entry.MarkAsWatched(time.Now().UTC())

	assert.Equal(t, StatusCompleted, entry.Status)
	assert.Equal(t, 4, entry.WatchedEpisodes)
	assert.InDelta(t, 100.0, entry.PercentageWatched(), 0.001)
}

func TestNewWatchEntryView(t *testing.T) {
	entry := &WatchEntry{
		Status:          StatusWatching,
		WatchedEpisodes: 9,
		TotalEpisodes:   intPtr(18),
	}

	view := NewWatchEntryView(entry)

	assert.InDelta(t, 50.0, view.Percentage, 0.001)
	assert.Equal(t, 9, view.WatchedEpisodes)
}
