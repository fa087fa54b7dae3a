package database

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackarr/trackarr/internal/models"
)

func TestSeriesUpdateRejectsLoweringTotalSeasons(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewSeriesStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM seasons WHERE series_id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	series := &models.Series{ID: 7, Title: "Dark", TotalSeasons: 2}
	err = store.Update(context.Background(), series)

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "total_seasons", vErr.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeriesUpdateWithinRecordedSeasons(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewSeriesStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM seasons WHERE series_id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE series SET title = $1, total_seasons = $2, updated_at = $3`)).
		WithArgs("Dark", 3, sqlmock.AnyArg(), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(nowRow()))
	mock.ExpectCommit()

	series := &models.Series{ID: 7, Title: "Dark", TotalSeasons: 3}
	err = store.Update(context.Background(), series)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
