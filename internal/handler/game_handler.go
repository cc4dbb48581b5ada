package handler

import (
	"net/http"
	"strconv"
	"time"

	"gamespace/backend/internal/database"
	"gamespace/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// GameInput defines the admin-editable fields of a game.
// The average rating is derived from reviews and cannot be set here.
type GameInput struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	Developer     string     `json:"developer"`
	Publisher     string     `json:"publisher"`
	ReleaseDate   *time.Time `json:"release_date"`
	CoverImageURL string     `json:"cover_image_url"`
}

// GameResponse defines the structure of a game in API responses.
type GameResponse struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Developer     string     `json:"developer"`
	Publisher     string     `json:"publisher"`
	ReleaseDate   *time.Time `json:"release_date"`
	CoverImageURL string     `json:"cover_image_url"`
	AverageRating float64    `json:"average_rating"`
}

func newGameResponse(game models.Game) GameResponse {
	return GameResponse{
		ID:            game.ID,
		Title:         game.Title,
		Description:   game.Description,
		Developer:     game.Developer,
		Publisher:     game.Publisher,
		ReleaseDate:   game.ReleaseDate,
		CoverImageURL: game.CoverImageURL,
		AverageRating: game.AverageRating,
	}
}

// PaginatedGameResponse defines the structure for a paginated list of games.
type PaginatedGameResponse struct {
	Data []GameResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// endregion

// region --- Public Handlers ---

// GetGames godoc
// @Summary      List games in the catalog
// @Description  Retrieves a paginated list of games. `search` matches title, developer, or publisher case-insensitively; `trending=true` orders by the number of library entries referencing each game.
// @Tags         games
// @Produce      json
// @Param        search   query     string  false  "Substring to match against title, developer, or publisher"
// @Param        trending query     bool    false  "Order by popularity (library entry count)"
// @Param        page     query     int     false  "Page number" default(1)
// @Param        limit    query     int     false  "Items per page" default(20)
// @Success      200 {object} PaginatedGameResponse
// @Failure      500 {object} ErrorResponse
// @Router       /games [get]
func GetGames(c *gin.Context) {
	page, limit := pageParams(c, 20)
	offset := (page - 1) * limit
	searchQuery := c.Query("search")
	trending, _ := strconv.ParseBool(c.Query("trending"))

	dbQuery := database.DB.Model(&models.Game{})

	// Filter first, then sort: search and trending compose.
	if searchQuery != "" {
		pattern := "%" + searchQuery + "%"
		dbQuery = dbQuery.Where(
			"title ILIKE ? OR developer ILIKE ? OR publisher ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	// Trending reorders but never changes which games match, so the count can
	// ignore it and skip the GROUP BY.
	var totalItems int64
	if err := dbQuery.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count games"})
		return
	}

	if trending {
		dbQuery = dbQuery.
			Joins("LEFT JOIN library_entries le ON le.game_id = games.id AND le.deleted_at IS NULL").
			Group("games.id").
			Order("COUNT(le.id) DESC, games.id ASC")
	} else {
		dbQuery = dbQuery.Order("games.id ASC")
	}

	var games []models.Game
	if err := dbQuery.Offset(offset).Limit(limit).Find(&games).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(response, totalItems, page, limit))
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Retrieves details for a single game, including its average rating.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func GetGameByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	c.JSON(http.StatusOK, newGameResponse(game))
}

// endregion

// region --- Admin Handlers ---

// CreateGame godoc
// @Summary      Create a new game
// @Description  Adds a game to the catalog.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  GameResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/games [post]
func CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game := models.Game{
		Title:         input.Title,
		Description:   input.Description,
		Developer:     input.Developer,
		Publisher:     input.Publisher,
		ReleaseDate:   input.ReleaseDate,
		CoverImageURL: input.CoverImageURL,
	}

	if err := database.DB.Create(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	c.JSON(http.StatusCreated, newGameResponse(game))
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Updates a game's catalog details. The average rating is untouched.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int       true  "Game ID"
// @Param        input body      GameInput true  "New Game Info"
// @Success      200   {object}  GameResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Admin access required"
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Router       /admin/games/{id} [put]
func UpdateGame(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game.Title = input.Title
	game.Description = input.Description
	game.Developer = input.Developer
	game.Publisher = input.Publisher
	game.ReleaseDate = input.ReleaseDate
	game.CoverImageURL = input.CoverImageURL

	if err := database.DB.Save(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	c.JSON(http.StatusOK, newGameResponse(game))
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes a game; its library entries, reviews, and threads cascade.
// @Tags         admin-games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} map[string]string "{"message": "Game deleted"}"
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /admin/games/{id} [delete]
func DeleteGame(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	result := database.DB.Delete(&models.Game{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete game"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
}

// endregion
