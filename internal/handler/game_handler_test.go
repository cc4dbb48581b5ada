package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeGamePage(t *testing.T, body []byte) PaginatedGameResponse {
	t.Helper()
	var page PaginatedGameResponse
	require.NoError(t, json.Unmarshal(body, &page))
	return page
}

func TestGetGamesReturnsAll(t *testing.T) {
	mock := useMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "games"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "games"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "developer", "publisher", "average_rating"}).
			AddRow(1, "Hades", "Supergiant", "Supergiant", 9.10).
			AddRow(2, "Celeste", "EXOK", "EXOK", 8.75))

	c, w := testContext(t, http.MethodGet, "/api/v1/games", nil, 0)
	GetGames(c)

	require.Equal(t, http.StatusOK, w.Code)
	page := decodeGamePage(t, w.Body.Bytes())
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Hades", page.Data[0].Title)
	assert.Equal(t, 9.10, page.Data[0].AverageRating)
	assert.Equal(t, int64(2), page.Meta.TotalItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGamesSearchMatchesTitleDeveloperOrPublisher(t *testing.T) {
	mock := useMockDB(t)

	pattern := "%zelda%"
	mock.ExpectQuery(`SELECT count\(\*\) FROM "games" WHERE .*title ILIKE \$1 OR developer ILIKE \$2 OR publisher ILIKE \$3`).
		WithArgs(pattern, pattern, pattern).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "games" WHERE .*title ILIKE \$1 OR developer ILIKE \$2 OR publisher ILIKE \$3`).
		WithArgs(pattern, pattern, pattern).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(1, "The Legend of Zelda"))

	c, w := testContext(t, http.MethodGet, "/api/v1/games?search=zelda", nil, 0)
	GetGames(c)

	require.Equal(t, http.StatusOK, w.Code)
	page := decodeGamePage(t, w.Body.Bytes())
	require.Len(t, page.Data, 1)
	assert.Equal(t, "The Legend of Zelda", page.Data[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGamesTrendingOrdersByLibraryCount(t *testing.T) {
	mock := useMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "games"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "games" LEFT JOIN library_entries le ON le\.game_id = games\.id AND le\.deleted_at IS NULL WHERE .+ GROUP BY "games"\."id" ORDER BY COUNT\(le\.id\) DESC, games\.id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(2, "Stardew Valley").
			AddRow(1, "Hades"))

	c, w := testContext(t, http.MethodGet, "/api/v1/games?trending=true", nil, 0)
	GetGames(c)

	require.Equal(t, http.StatusOK, w.Code)
	page := decodeGamePage(t, w.Body.Bytes())
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Stardew Valley", page.Data[0].Title)
	assert.Equal(t, "Hades", page.Data[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGamesSearchAndTrendingCompose(t *testing.T) {
	mock := useMockDB(t)

	pattern := "%super%"
	mock.ExpectQuery(`SELECT count\(\*\) FROM "games" WHERE .*title ILIKE \$1 OR developer ILIKE \$2 OR publisher ILIKE \$3`).
		WithArgs(pattern, pattern, pattern).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`LEFT JOIN library_entries le .+ GROUP BY "games"\."id" ORDER BY COUNT\(le\.id\) DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(1, "Super Metroid"))

	c, w := testContext(t, http.MethodGet, "/api/v1/games?search=super&trending=true", nil, 0)
	GetGames(c)

	require.Equal(t, http.StatusOK, w.Code)
	page := decodeGamePage(t, w.Body.Bytes())
	require.Len(t, page.Data, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGameByIDNotFound(t *testing.T) {
	mock := useMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "games"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, w := testContext(t, http.MethodGet, "/api/v1/games/99", nil, 0)
	c.Params = []gin.Param{{Key: "id", Value: "99"}}
	GetGameByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
