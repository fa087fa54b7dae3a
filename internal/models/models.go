package models

import "time"

type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Genres      []string  `json:"genres"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Series struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	TotalSeasons int       `json:"total_seasons"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	// Populated on detail reads only
	Seasons []Season `json:"seasons,omitempty"`
}

type Season struct {
	ID            int64 `json:"id"`
	SeriesID      int64 `json:"series_id"`
	Number        int   `json:"number"`
	EpisodesCount int   `json:"episodes_count"`
}

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
