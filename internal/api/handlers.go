package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/trackarr/trackarr/internal/models"
)

// ProgressService is the watchlist/progress surface the handlers call.
// Satisfied by *services.ProgressService.
type ProgressService interface {
	ListWatchlist(ctx context.Context, userID int64) ([]models.WatchEntryView, error)
	AddMovie(ctx context.Context, userID, movieID int64) (*models.WatchEntryView, error)
	AddSeries(ctx context.Context, userID, seriesID int64) (*models.WatchEntryView, error)
	UpdateSeriesProgress(ctx context.Context, userID, seriesID int64, patch *models.ProgressPatch) (*models.WatchEntryView, error)
}

// Catalog store interfaces, satisfied by the database package's stores.
type MovieStore interface {
	Add(ctx context.Context, movie *models.Movie) error
	Get(ctx context.Context, id int64) (*models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
	Update(ctx context.Context, movie *models.Movie) error
	Delete(ctx context.Context, id int64) error
}

type SeriesStore interface {
	Add(ctx context.Context, series *models.Series) error
	Get(ctx context.Context, id int64) (*models.Series, error)
	GetWithSeasons(ctx context.Context, id int64) (*models.Series, error)
	List(ctx context.Context) ([]models.Series, error)
	Update(ctx context.Context, series *models.Series) error
	Delete(ctx context.Context, id int64) error
}

type SeasonStore interface {
	Add(ctx context.Context, season *models.Season) error
	Get(ctx context.Context, id int64) (*models.Season, error)
	ListBySeries(ctx context.Context, seriesID int64) ([]models.Season, error)
	Update(ctx context.Context, season *models.Season) error
	Delete(ctx context.Context, id int64) error
}

type UserStore interface {
	Add(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// HealthFunc reports backing-store liveness.
type HealthFunc func(ctx context.Context) error

type Handler struct {
	movieStore  MovieStore
	seriesStore SeriesStore
	seasonStore SeasonStore
	userStore   UserStore
	progress    ProgressService
	health      HealthFunc
}

func NewHandler(
	movieStore MovieStore,
	seriesStore SeriesStore,
	seasonStore SeasonStore,
	userStore UserStore,
	progress ProgressService,
	health HealthFunc,
) *Handler {
	return &Handler{
		movieStore:  movieStore,
		seriesStore: seriesStore,
		seasonStore: seasonStore,
		userStore:   userStore,
		progress:    progress,
		health:      health,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain errors onto HTTP statuses. Duplicates are
// surfaced as 400 like any other bad request.
func respondServiceError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrAlreadyExists):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// RootHandler handles GET /
func (h *Handler) RootHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"name":    "TrackArr API",
		"version": "v1",
	})
}

// HealthCheck handles GET /api/v1/health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	databaseStatus := "ok"
	code := http.StatusOK

	if err := h.health(r.Context()); err != nil {
		status = "error"
		databaseStatus = "error"
		code = http.StatusInternalServerError
	}

	respondJSON(w, code, map[string]string{
		"status":   status,
		"database": databaseStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
