package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamespace/backend/internal/database"
	"gamespace/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FollowUser godoc
// @Summary      Follow a user
// @Description  Creates a follow from the authenticated user to the target user.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      201  {object}  map[string]string "{"message": "Now following"}"
// @Failure      400  {object}  ErrorResponse "Invalid ID or self-follow"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Already following"
// @Router       /users/{id}/follow [post]
func FollowUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if viewerID.(uint) == uint(targetUserID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	var targetUser models.User
	if err := database.DB.First(&targetUser, uint(targetUserID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	follow := models.Follow{
		FollowerID:  viewerID.(uint),
		FollowingID: uint(targetUserID),
	}
	if err := database.DB.Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already following this user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Now following"})
}

// UnfollowUser godoc
// @Summary      Unfollow a user
// @Description  Removes the authenticated user's follow of the target user.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  map[string]string "{"message": "Unfollowed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Not following this user"
// @Router       /users/{id}/follow [delete]
func UnfollowUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	result := database.DB.
		Where("follower_id = ? AND following_id = ?", viewerID, targetUserID).
		Delete(&models.Follow{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not following this user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

// GetMyFollowers godoc
// @Summary      List followers
// @Description  Lists the users following the authenticated user.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/followers [get]
func GetMyFollowers(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var follows []models.Follow
	if err := database.DB.Preload("Follower").
		Where("following_id = ?", viewerID).
		Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch followers"})
		return
	}

	response := make([]PublicUserResponse, 0, len(follows))
	for _, follow := range follows {
		if follow.Follower.ID == 0 {
			continue
		}
		response = append(response, buildPublicUserResponse(follow.Follower))
	}

	c.JSON(http.StatusOK, response)
}

// GetMyFollowing godoc
// @Summary      List followed users
// @Description  Lists the users the authenticated user follows.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/following [get]
func GetMyFollowing(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var follows []models.Follow
	if err := database.DB.Preload("Following").
		Where("follower_id = ?", viewerID).
		Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch followed users"})
		return
	}

	response := make([]PublicUserResponse, 0, len(follows))
	for _, follow := range follows {
		if follow.Following.ID == 0 {
			continue
		}
		response = append(response, buildPublicUserResponse(follow.Following))
	}

	c.JSON(http.StatusOK, response)
}
