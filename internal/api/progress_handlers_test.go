package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trackarr/trackarr/internal/models"
)

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) ListWatchlist(ctx context.Context, userID int64) ([]models.WatchEntryView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WatchEntryView), args.Error(1)
}

func (m *MockProgressService) AddMovie(ctx context.Context, userID, movieID int64) (*models.WatchEntryView, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchEntryView), args.Error(1)
}

func (m *MockProgressService) AddSeries(ctx context.Context, userID, seriesID int64) (*models.WatchEntryView, error) {
	args := m.Called(ctx, userID, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchEntryView), args.Error(1)
}

func (m *MockProgressService) UpdateSeriesProgress(ctx context.Context, userID, seriesID int64, patch *models.ProgressPatch) (*models.WatchEntryView, error) {
	args := m.Called(ctx, userID, seriesID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchEntryView), args.Error(1)
}

func newTestServer(progress ProgressService, health HealthFunc) http.Handler {
	if health == nil {
		health = func(ctx context.Context) error { return nil }
	}
	handler := NewHandler(nil, nil, nil, nil, progress, health)
	return SetupRoutes(handler)
}

func doRequest(t *testing.T, router http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reader)
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetMyWatchlistMissingIdentity(t *testing.T) {
	svc := &MockProgressService{}
	router := newTestServer(svc, nil)

	rec := doRequest(t, router, "GET", "/api/v1/me/watchlist", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ListWatchlist", mock.Anything, mock.Anything)
}

func TestGetMyWatchlistInvalidIdentity(t *testing.T) {
	router := newTestServer(&MockProgressService{}, nil)

	rec := doRequest(t, router, "GET", "/api/v1/me/watchlist", "not-a-number", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMyWatchlistUnknownUser(t *testing.T) {
	svc := &MockProgressService{}
	svc.On("ListWatchlist", mock.Anything, int64(42)).
		Return(nil, fmt.Errorf("user 42: %w", models.ErrNotFound))
	router := newTestServer(svc, nil)

	rec := doRequest(t, router, "GET", "/api/v1/me/watchlist", "42", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMyWatchlist(t *testing.T) {
	svc := &MockProgressService{}
	total := 18
	svc.On("ListWatchlist", mock.Anything, int64(1)).Return([]models.WatchEntryView{
		{
			WatchEntry: models.WatchEntry{ID: 5, UserID: 1, ContentType: models.ContentTypeSeries,
				Status: models.StatusWatching, WatchedEpisodes: 9, TotalEpisodes: &total},
			Percentage: 50.0,
		},
	}, nil)
	router := newTestServer(svc, nil)

	rec := doRequest(t, router, "GET", "/api/v1/me/watchlist", "1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 50.0, entries[0]["percentage"])
	assert.Equal(t, "watching", entries[0]["status"])
}

func TestAddMovieToWatchlist(t *testing.T) {
	svc := &MockProgressService{}
	view := &models.WatchEntryView{
		WatchEntry: models.WatchEntry{ID: 10, UserID: 1, ContentType: models.ContentTypeMovie,
			ContentID: 3, Status: models.StatusWatching},
	}
	svc.On("AddMovie", mock.Anything, int64(1), int64(3)).Return(view, nil)
	router := newTestServer(svc, nil)

	rec := doRequest(t, router, "POST", "/api/v1/watchlist/movies/3", "1", nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestAddMovieToWatchlistDuplicate(t *testing.T) {
	svc := &MockProgressService{}
	svc.On("AddMovie", mock.Anything, int64(1), int64(3)).
		Return(nil, fmt.Errorf("watch entry for movie 3: %w", models.ErrAlreadyExists))
	router := newTestServer(svc, nil)

	rec := doRequest(t, router, "POST", "/api/v1/watchlist/movies/3", "1", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestAddSeriesToWatchlistUnknownSeries(t *testing.T) {
	svc := &MockProgressService{}
	svc.On("AddSeries", mock.Anything, int64(1), int64(9)).
		Return(nil, fmt.Errorf("series 9: %w", models.ErrNotFound))
	router := newTestServer(svc, nil)

	rec := doRequest(t, router, "POST", "/api/v1/watchlist/series/9", "1", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateSeriesProgress(t *testing.T) {
	svc := &MockProgressService{}
	total := 18
	view := &models.WatchEntryView{
		WatchEntry: models.WatchEntry{ID: 5, UserID: 1, ContentType: models.ContentTypeSeries,
			ContentID: 7, Status: models.StatusWatching, WatchedEpisodes: 9, TotalEpisodes: &total},
		Percentage: 50.0,
	}
	svc.On("UpdateSeriesProgress", mock.Anything, int64(1), int64(7), mock.AnythingOfType("*models.ProgressPatch")).
		Run(func(args mock.Arguments) {
			patch := args.Get(3).(*models.ProgressPatch)
			assert.True(t, patch.WatchedEpisodes.Set)
			assert.Equal(t, 9, *patch.WatchedEpisodes.Value)
			assert.False(t, patch.Status.Set)
		}).Return(view, nil)
	router := newTestServer(svc, nil)

	rec := doRequest(t, router, "PATCH", "/api/v1/progress/series/7", "1",
		map[string]any{"watched_episodes": 9})

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 50.0, got["percentage"])
}

func TestUpdateSeriesProgressValidationError(t *testing.T) {
	svc := &MockProgressService{}
	svc.On("UpdateSeriesProgress", mock.Anything, int64(1), int64(7), mock.Anything).
		Return(nil, models.NewValidationError("current_season", "exceeds the series' 2 seasons"))
	router := newTestServer(svc, nil)

	rec := doRequest(t, router, "PATCH", "/api/v1/progress/series/7", "1",
		map[string]any{"current_season": 5})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "current_season")
}

func TestUpdateSeriesProgressBadBody(t *testing.T) {
	svc := &MockProgressService{}
	router := newTestServer(svc, nil)

	req := httptest.NewRequest("PATCH", "/api/v1/progress/series/7", bytes.NewBufferString(`{"watched_episodes": "nine"}`))
	req.Header.Set(userIDHeader, "1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UpdateSeriesProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHealthCheck(t *testing.T) {
	router := newTestServer(&MockProgressService{}, nil)

	rec := doRequest(t, router, "GET", "/api/v1/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, "ok", payload["database"])
	assert.NotEmpty(t, payload["time"])
}

func TestHealthCheckStoreFailure(t *testing.T) {
	router := newTestServer(&MockProgressService{}, func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	rec := doRequest(t, router, "GET", "/api/v1/health", "", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"error"`)
}
