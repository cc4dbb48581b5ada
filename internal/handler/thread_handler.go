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

// ThreadInput defines the structure for creating a forum thread.
type ThreadInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ThreadResponse defines the structure of a forum thread in API responses.
type ThreadResponse struct {
	ID        uint      `json:"id"`
	GameID    uint      `json:"game_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func newThreadResponse(thread models.ForumThread) ThreadResponse {
	return ThreadResponse{
		ID:        thread.ID,
		GameID:    thread.GameID,
		UserID:    thread.UserID,
		Username:  thread.User.Username,
		Title:     thread.Title,
		Content:   thread.Content,
		CreatedAt: thread.CreatedAt,
	}
}

// PaginatedThreadResponse defines the structure for a paginated list of threads.
type PaginatedThreadResponse struct {
	Data []ThreadResponse `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}

// endregion

// GetGameThreads godoc
// @Summary      List a game's forum threads
// @Description  Retrieves the forum threads for a game, newest first.
// @Tags         forum
// @Produce      json
// @Param        id    path      int  true   "Game ID"
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(20)
// @Success      200 {object} PaginatedThreadResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id}/threads [get]
func GetGameThreads(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	page, limit := pageParams(c, 20)

	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	query := database.DB.Preload("User").
		Where("game_id = ?", game.ID).
		Order("created_at DESC")

	paginated, err := Paginate[models.ForumThread](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve threads"})
		return
	}

	response := make([]ThreadResponse, 0, len(paginated.Data))
	for _, thread := range paginated.Data {
		response = append(response, newThreadResponse(thread))
	}

	c.JSON(http.StatusOK, PaginatedThreadResponse{Data: response, Meta: paginated.Meta})
}

// CreateThread godoc
// @Summary      Start a forum thread
// @Description  Creates a new forum thread under a game. Any authenticated user may post under any game.
// @Tags         forum
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int         true  "Game ID"
// @Param        input body      ThreadInput true  "Thread Info"
// @Success      201  {object}  ThreadResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id}/threads [post]
func CreateThread(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var input ThreadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thread := models.ForumThread{
		GameID:  game.ID,
		UserID:  viewerID.(uint),
		Title:   input.Title,
		Content: input.Content,
	}
	if err := database.DB.Create(&thread).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create thread"})
		return
	}

	database.DB.Preload("User").First(&thread, thread.ID)

	c.JSON(http.StatusCreated, newThreadResponse(thread))
}

// GetThreadByID godoc
// @Summary      Get a forum thread
// @Description  Retrieves a single forum thread.
// @Tags         forum
// @Produce      json
// @Param        id path int true "Thread ID"
// @Success      200 {object} ThreadResponse
// @Failure      404 {object} ErrorResponse "Thread not found"
// @Router       /threads/{id} [get]
func GetThreadByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var thread models.ForumThread
	if err := database.DB.Preload("User").First(&thread, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}

	c.JSON(http.StatusOK, newThreadResponse(thread))
}

// DeleteThread godoc
// @Summary      Delete a forum thread
// @Description  Deletes one of the authenticated user's own threads. Threads by other authors look like missing ones.
// @Tags         forum
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Thread ID"
// @Success      200  {object}  map[string]string "{"message": "Thread deleted"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Thread not found"
// @Router       /threads/{id} [delete]
func DeleteThread(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	result := database.DB.Where("user_id = ?", viewerID).Delete(&models.ForumThread{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete thread"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Thread deleted"})
}
