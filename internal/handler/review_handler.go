package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"gamespace/backend/internal/apperr"
	"gamespace/backend/internal/database"
	"gamespace/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// region --- DTOs ---

// CreateReviewInput defines the structure for creating a review.
// The game reference is accepted under either "game_id" or "game".
type CreateReviewInput struct {
	GameID  uint   `json:"game_id"`
	Game    uint   `json:"game"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse defines the structure of a review in listing responses.
type ReviewResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// endregion

// region --- Review Core ---

// createReview validates the request and runs the review transaction: the
// duplicate check, the insert, and the average-rating recompute either all
// commit or none do, so readers never see a review without its rating update.
func createReview(db *gorm.DB, userID, gameID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 10 {
		return nil, apperr.Validation("Rating must be between 1 and 10")
	}

	var game models.Game
	if err := db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("Game not found")
		}
		return nil, err
	}

	review := models.Review{
		UserID:  userID,
		GameID:  gameID,
		Rating:  rating,
		Comment: comment,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Review{}).
			Where("user_id = ? AND game_id = ?", userID, gameID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("You have already reviewed this game.")
		}

		if err := tx.Create(&review).Error; err != nil {
			// Two concurrent attempts can both pass the existence check; the
			// unique index then rejects the later insert.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("You have already reviewed this game.")
			}
			return err
		}

		return recomputeAverageRating(tx, gameID)
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// recomputeAverageRating re-aggregates all of the game's ratings and persists
// the rounded mean. Always a full AVG, never incremental, so the stored value
// cannot drift from the reviews.
func recomputeAverageRating(tx *gorm.DB, gameID uint) error {
	var avg float64
	if err := tx.Model(&models.Review{}).
		Where("game_id = ?", gameID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return err
	}

	return tx.Model(&models.Game{}).
		Where("id = ?", gameID).
		Update("average_rating", roundRating(avg)).Error
}

// roundRating rounds a mean rating to 2 decimal places.
func roundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}

// endregion

// region --- Handlers ---

// CreateReview godoc
// @Summary      Review a game
// @Description  Creates a review and atomically updates the game's average rating. A user can review a game only once.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateReviewInput true "Review Info"
// @Success      201  {object}  map[string]interface{} "{"success": true, "data": {"id": 1, "rating": 8}}"
// @Failure      400  {object}  ErrorResponse "Missing game ID or invalid rating"
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  map[string]interface{} "{"success": false, "error": "You have already reviewed this game."}"
// @Router       /reviews [post]
func CreateReview(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gameID := input.GameID
	if gameID == 0 {
		gameID = input.Game
	}
	if gameID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Game ID is required"})
		return
	}

	review, err := createReview(database.DB, viewerID.(uint), gameID, input.Rating, input.Comment)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": apperr.Message(err)})
		case errors.Is(err, apperr.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": apperr.Message(err)})
		default:
			// No raw storage error reaches the client.
			logrus.WithError(err).Error("review creation failed")
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"id": review.ID, "rating": review.Rating},
	})
}

// GetGameReviews godoc
// @Summary      List a game's reviews
// @Description  Retrieves the reviews for a game, newest first.
// @Tags         reviews
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {array} ReviewResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id}/reviews [get]
func GetGameReviews(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var reviews []models.Review
	if err := database.DB.Preload("User").
		Where("game_id = ?", game.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}

	response := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		response = append(response, ReviewResponse{
			ID:        review.ID,
			UserID:    review.UserID,
			Username:  review.User.Username,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// endregion
