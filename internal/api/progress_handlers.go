package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trackarr/trackarr/internal/models"
)

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// GetMyWatchlist handles GET /api/v1/me/watchlist
func (h *Handler) GetMyWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.progress.ListWatchlist(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// AddMovieToWatchlist handles POST /api/v1/watchlist/movies/{movieId}
func (h *Handler) AddMovieToWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	movieID, err := pathID(r, "movieId")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.progress.AddMovie(r.Context(), userID, movieID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// AddSeriesToWatchlist handles POST /api/v1/watchlist/series/{seriesId}
func (h *Handler) AddSeriesToWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	seriesID, err := pathID(r, "seriesId")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.progress.AddSeries(r.Context(), userID, seriesID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// UpdateSeriesProgress handles PATCH /api/v1/progress/series/{seriesId}
func (h *Handler) UpdateSeriesProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	seriesID, err := pathID(r, "seriesId")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch models.ProgressPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.progress.UpdateSeriesProgress(r.Context(), userID, seriesID, &patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}
