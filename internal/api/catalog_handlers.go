package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/trackarr/trackarr/internal/models"
)

type movieRequest struct {
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	ReleaseYear *int     `json:"release_year"`
}

func (req *movieRequest) validate() *models.ValidationError {
	if strings.TrimSpace(req.Title) == "" {
		return models.NewValidationError("title", "must be a non-empty string")
	}
	if req.ReleaseYear != nil && *req.ReleaseYear < 0 {
		return models.NewValidationError("release_year", "must be a non-negative integer")
	}
	return nil
}

type seriesRequest struct {
	Title        string `json:"title"`
	TotalSeasons *int   `json:"total_seasons"`
}

func (req *seriesRequest) validate() *models.ValidationError {
	if strings.TrimSpace(req.Title) == "" {
		return models.NewValidationError("title", "must be a non-empty string")
	}
	if req.TotalSeasons != nil && *req.TotalSeasons < 1 {
		return models.NewValidationError("total_seasons", "must be a positive integer")
	}
	return nil
}

type seasonRequest struct {
	Number        *int `json:"number"`
	EpisodesCount *int `json:"episodes_count"`
}

func (req *seasonRequest) validate() *models.ValidationError {
	if req.Number == nil || *req.Number < 1 {
		return models.NewValidationError("number", "must be a positive integer")
	}
	if req.EpisodesCount != nil && *req.EpisodesCount < 0 {
		return models.NewValidationError("episodes_count", "must be a non-negative integer")
	}
	return nil
}

type userRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

func (req *userRequest) validate() *models.ValidationError {
	if strings.TrimSpace(req.Name) == "" {
		return models.NewValidationError("name", "must be a non-empty string")
	}
	return nil
}

// ListMovies handles GET /api/v1/movies
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movieStore.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, movies)
}

// CreateMovie handles POST /api/v1/movies
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if vErr := req.validate(); vErr != nil {
		respondError(w, http.StatusBadRequest, vErr.Error())
		return
	}

	movie := &models.Movie{
		Title:       strings.TrimSpace(req.Title),
		Genres:      req.Genres,
		ReleaseYear: req.ReleaseYear,
	}
	if movie.Genres == nil {
		movie.Genres = []string{}
	}
	if err := h.movieStore.Add(r.Context(), movie); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, movie)
}

// GetMovie handles GET /api/v1/movies/{id}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	movie, err := h.movieStore.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, movie)
}

// UpdateMovie handles PUT /api/v1/movies/{id}
func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req movieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if vErr := req.validate(); vErr != nil {
		respondError(w, http.StatusBadRequest, vErr.Error())
		return
	}

	movie := &models.Movie{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Genres:      req.Genres,
		ReleaseYear: req.ReleaseYear,
	}
	if movie.Genres == nil {
		movie.Genres = []string{}
	}
	if err := h.movieStore.Update(r.Context(), movie); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, movie)
}

// DeleteMovie handles DELETE /api/v1/movies/{id}
func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.movieStore.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSeries handles GET /api/v1/series
func (h *Handler) ListSeries(w http.ResponseWriter, r *http.Request) {
	list, err := h.seriesStore.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// CreateSeries handles POST /api/v1/series
func (h *Handler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	var req seriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if vErr := req.validate(); vErr != nil {
		respondError(w, http.StatusBadRequest, vErr.Error())
		return
	}

	series := &models.Series{
		Title:        strings.TrimSpace(req.Title),
		TotalSeasons: 1,
	}
	if req.TotalSeasons != nil {
		series.TotalSeasons = *req.TotalSeasons
	}
	if err := h.seriesStore.Add(r.Context(), series); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, series)
}

// GetSeries handles GET /api/v1/series/{id}, seasons included.
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	series, err := h.seriesStore.GetWithSeasons(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, series)
}

// UpdateSeries handles PUT /api/v1/series/{id}
func (h *Handler) UpdateSeries(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req seriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if vErr := req.validate(); vErr != nil {
		respondError(w, http.StatusBadRequest, vErr.Error())
		return
	}

	current, err := h.seriesStore.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	current.Title = strings.TrimSpace(req.Title)
	if req.TotalSeasons != nil {
		current.TotalSeasons = *req.TotalSeasons
	}
	if err := h.seriesStore.Update(r.Context(), current); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, current)
}

// DeleteSeries handles DELETE /api/v1/series/{id}
func (h *Handler) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.seriesStore.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSeasons handles GET /api/v1/series/{id}/seasons
func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.seriesStore.Get(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	seasons, err := h.seasonStore.ListBySeries(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, seasons)
}

// AddSeason handles POST /api/v1/series/{id}/seasons
func (h *Handler) AddSeason(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req seasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if vErr := req.validate(); vErr != nil {
		respondError(w, http.StatusBadRequest, vErr.Error())
		return
	}

	season := &models.Season{
		SeriesID: id,
		Number:   *req.Number,
	}
	if req.EpisodesCount != nil {
		season.EpisodesCount = *req.EpisodesCount
	}
	if err := h.seasonStore.Add(r.Context(), season); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, season)
}

// UpdateSeason handles PUT /api/v1/seasons/{id}
func (h *Handler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req seasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if vErr := req.validate(); vErr != nil {
		respondError(w, http.StatusBadRequest, vErr.Error())
		return
	}

	season, err := h.seasonStore.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	season.Number = *req.Number
	if req.EpisodesCount != nil {
		season.EpisodesCount = *req.EpisodesCount
	}
	if err := h.seasonStore.Update(r.Context(), season); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, season)
}

// DeleteSeason handles DELETE /api/v1/seasons/{id}
func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.seasonStore.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUsers handles GET /api/v1/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// CreateUser handles POST /api/v1/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if vErr := req.validate(); vErr != nil {
		respondError(w, http.StatusBadRequest, vErr.Error())
		return
	}

	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: req.Email,
	}
	if err := h.userStore.Add(r.Context(), user); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// GetUser handles GET /api/v1/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.userStore.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /api/v1/users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if vErr := req.validate(); vErr != nil {
		respondError(w, http.StatusBadRequest, vErr.Error())
		return
	}

	user := &models.User{
		ID:    id,
		Name:  strings.TrimSpace(req.Name),
		Email: req.Email,
	}
	if err := h.userStore.Update(r.Context(), user); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/v1/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.userStore.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
