package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gamespace/backend/internal/database"
	"gamespace/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// LibraryEntryInput defines the structure for adding a game to the library.
type LibraryEntryInput struct {
	GameID uint   `json:"game_id" binding:"required"`
	Status string `json:"status"`
}

// LibraryEntryUpdateInput defines the structure for changing an entry's status.
type LibraryEntryUpdateInput struct {
	Status string `json:"status" binding:"required"`
}

// LibraryEntryResponse defines the structure of a library entry, with the
// game's details nested so clients don't need a second lookup.
type LibraryEntryResponse struct {
	ID          uint         `json:"id"`
	GameID      uint         `json:"game_id"`
	Status      string       `json:"status"`
	AddedAt     time.Time    `json:"added_at"`
	GameDetails GameResponse `json:"game_details"`
}

func newLibraryEntryResponse(entry models.LibraryEntry) LibraryEntryResponse {
	return LibraryEntryResponse{
		ID:          entry.ID,
		GameID:      entry.GameID,
		Status:      string(entry.Status),
		AddedAt:     entry.CreatedAt,
		GameDetails: newGameResponse(entry.Game),
	}
}

// endregion

// ownedEntry scopes a library-entry lookup to its owner. A row owned by
// someone else is indistinguishable from a missing one.
func ownedEntry(userID uint) *gorm.DB {
	return database.DB.Where("user_id = ?", userID)
}

// GetMyLibrary godoc
// @Summary      List the current user's library
// @Description  Returns the authenticated user's library entries with nested game details.
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   LibraryEntryResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /library [get]
func GetMyLibrary(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var entries []models.LibraryEntry
	if err := ownedEntry(viewerID.(uint)).Preload("Game").Order("created_at DESC").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve library"})
		return
	}

	response := make([]LibraryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, newLibraryEntryResponse(entry))
	}

	c.JSON(http.StatusOK, response)
}

// CreateLibraryEntry godoc
// @Summary      Add a game to the library
// @Description  Creates a library entry for the authenticated user. A game can only be added once.
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body LibraryEntryInput true "Entry Info"
// @Success      201  {object}  LibraryEntryResponse
// @Failure      400  {object}  ErrorResponse "Invalid input or status"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      409  {object}  ErrorResponse "Game already in library"
// @Router       /library [post]
func CreateLibraryEntry(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input LibraryEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.StatusPlaying
	if input.Status != "" {
		status = models.LibraryStatus(input.Status)
		if !models.ValidLibraryStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
	}

	var game models.Game
	if err := database.DB.First(&game, input.GameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	entry := models.LibraryEntry{
		UserID: viewerID.(uint),
		GameID: input.GameID,
		Status: status,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Game already in library"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create library entry"})
		return
	}

	entry.Game = game
	c.JSON(http.StatusCreated, newLibraryEntryResponse(entry))
}

// GetLibraryEntry godoc
// @Summary      Get a library entry
// @Description  Retrieves one of the authenticated user's library entries.
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Entry ID"
// @Success      200  {object}  LibraryEntryResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Entry not found"
// @Router       /library/{id} [get]
func GetLibraryEntry(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var entry models.LibraryEntry
	if err := ownedEntry(viewerID.(uint)).Preload("Game").First(&entry, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Library entry not found"})
		return
	}

	c.JSON(http.StatusOK, newLibraryEntryResponse(entry))
}

// UpdateLibraryEntry godoc
// @Summary      Update a library entry's status
// @Description  Changes the status of one of the authenticated user's library entries.
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "Entry ID"
// @Param        input body      LibraryEntryUpdateInput true  "New status"
// @Success      200   {object}  LibraryEntryResponse
// @Failure      400   {object}  ErrorResponse "Invalid status"
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Entry not found"
// @Router       /library/{id} [put]
func UpdateLibraryEntry(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var input LibraryEntryUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.LibraryStatus(input.Status)
	if !models.ValidLibraryStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var entry models.LibraryEntry
	if err := ownedEntry(viewerID.(uint)).Preload("Game").First(&entry, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Library entry not found"})
		return
	}

	if err := database.DB.Model(&entry).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update library entry"})
		return
	}

	c.JSON(http.StatusOK, newLibraryEntryResponse(entry))
}

// DeleteLibraryEntry godoc
// @Summary      Remove a game from the library
// @Description  Deletes one of the authenticated user's library entries.
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Entry ID"
// @Success      200  {object}  map[string]string "{"message": "Library entry removed"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Entry not found"
// @Router       /library/{id} [delete]
func DeleteLibraryEntry(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	result := ownedEntry(viewerID.(uint)).Delete(&models.LibraryEntry{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove library entry"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Library entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Library entry removed"})
}
