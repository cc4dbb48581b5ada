package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"gamespace/backend/internal/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectGameLookup(mock sqlmock.Sqlmock, gameID uint) {
	mock.ExpectQuery(`SELECT \* FROM "games"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "average_rating"}).
			AddRow(gameID, "Breath of the Wild", 0.0))
}

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	db, _ := newMockDB(t)

	for _, rating := range []int{0, -1, 11, 100} {
		_, err := createReview(db, 1, 1, rating, "")
		assert.ErrorIs(t, err, apperr.ErrValidation, "rating %d", rating)
	}
}

func TestCreateReviewRejectsMissingGame(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "games"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := createReview(db, 1, 99, 8, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewCommitsInsertAndAverageTogether(t *testing.T) {
	db, mock := newMockDB(t)

	expectGameLookup(mock, 1)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews"`).
		WithArgs(uint(1), uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`SELECT COALESCE\(AVG\(rating\), 0\) FROM "reviews"`).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(8.0))
	mock.ExpectExec(`UPDATE "games" SET`).
		WithArgs(8.0, sqlmock.AnyArg(), uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	review, err := createReview(db, 1, 1, 8, "masterpiece")
	require.NoError(t, err)
	assert.Equal(t, uint(5), review.ID)
	assert.Equal(t, 8, review.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewRoundsAverageToTwoPlaces(t *testing.T) {
	db, mock := newMockDB(t)

	expectGameLookup(mock, 1)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
	mock.ExpectQuery(`SELECT COALESCE\(AVG\(rating\), 0\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7.666666666666667))
	mock.ExpectExec(`UPDATE "games" SET`).
		WithArgs(7.67, sqlmock.AnyArg(), uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := createReview(db, 2, 1, 9, "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	db, mock := newMockDB(t)

	expectGameLookup(mock, 1)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := createReview(db, 1, 1, 8, "")
	require.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "You have already reviewed this game.", apperr.Message(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewTranslatesUniqueViolationToConflict(t *testing.T) {
	// Two concurrent requests can both pass the existence check; the unique
	// index rejects the later insert, which must surface as a conflict.
	db, mock := newMockDB(t)

	expectGameLookup(mock, 1)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := createReview(db, 1, 1, 8, "")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewRollsBackOnAverageUpdateFailure(t *testing.T) {
	db, mock := newMockDB(t)

	expectGameLookup(mock, 1)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`SELECT COALESCE\(AVG\(rating\), 0\) FROM "reviews"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := createReview(db, 1, 1, 8, "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoundRating(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{8, 8},
		{7.666666666666667, 7.67},
		{8.125, 8.13},
		{9.994999, 9.99},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, roundRating(tc.in), "input %v", tc.in)
	}
}

func TestCreateReviewHandlerRequiresGameID(t *testing.T) {
	useMockDB(t)

	c, w := testContext(t, http.MethodPost, "/api/v1/reviews", []byte(`{"rating": 8}`), 1)
	CreateReview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Game ID is required", body["error"])
}

func TestCreateReviewHandlerAcceptsGameKeyAlias(t *testing.T) {
	mock := useMockDB(t)

	expectGameLookup(mock, 3)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`SELECT COALESCE\(AVG\(rating\), 0\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(8.0))
	mock.ExpectExec(`UPDATE "games" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, w := testContext(t, http.MethodPost, "/api/v1/reviews", []byte(`{"game": 3, "rating": 8}`), 1)
	CreateReview(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID     uint `json:"id"`
			Rating int  `json:"rating"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, uint(11), body.Data.ID)
	assert.Equal(t, 8, body.Data.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewHandlerConflictEnvelope(t *testing.T) {
	mock := useMockDB(t)

	expectGameLookup(mock, 1)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	c, w := testContext(t, http.MethodPost, "/api/v1/reviews", []byte(`{"game_id": 1, "rating": 8}`), 1)
	CreateReview(c)

	require.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "You have already reviewed this game.", body.Error)
}
