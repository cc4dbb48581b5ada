package main

import (
	"net/http"

	"gamespace/backend/internal/auth"
	"gamespace/backend/internal/config"
	"gamespace/backend/internal/database"
	"gamespace/backend/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	// Swagger imports
	_ "gamespace/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           GameSpace API
// @version         1.0
// @description     This is the API for the GameSpace game-cataloging platform.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
			authRoutes.POST("/refresh", handler.RefreshToken)
		}

		// Public catalog routes
		gameRoutes := apiV1.Group("/games")
		{
			gameRoutes.GET("", handler.GetGames)
			gameRoutes.GET("/:id", handler.GetGameByID)
			gameRoutes.GET("/:id/reviews", handler.GetGameReviews)
			gameRoutes.GET("/:id/threads", handler.GetGameThreads)
		}
		apiV1.GET("/threads/:id", handler.GetThreadByID)

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.PUT("/me", handler.UpdateMe)
			userRoutes.GET("/me/followers", handler.GetMyFollowers)
			userRoutes.GET("/me/following", handler.GetMyFollowing)
			userRoutes.GET("/:id", handler.GetUserByID)

			// Follow routes
			userRoutes.POST("/:id/follow", handler.FollowUser)
			userRoutes.DELETE("/:id/follow", handler.UnfollowUser)
		}

		// Library routes (protected)
		libraryRoutes := apiV1.Group("/library")
		libraryRoutes.Use(auth.AuthMiddleware())
		{
			libraryRoutes.GET("", handler.GetMyLibrary)
			libraryRoutes.POST("", handler.CreateLibraryEntry)
			libraryRoutes.GET("/:id", handler.GetLibraryEntry)
			libraryRoutes.PUT("/:id", handler.UpdateLibraryEntry)
			libraryRoutes.DELETE("/:id", handler.DeleteLibraryEntry)
		}

		// Review routes (protected)
		reviewRoutes := apiV1.Group("/reviews")
		reviewRoutes.Use(auth.AuthMiddleware())
		{
			reviewRoutes.POST("", handler.CreateReview)
		}

		// Forum routes (protected writes)
		forumRoutes := apiV1.Group("")
		forumRoutes.Use(auth.AuthMiddleware())
		{
			forumRoutes.POST("/games/:id/threads", handler.CreateThread)
			forumRoutes.DELETE("/threads/:id", handler.DeleteThread)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			adminGameRoutes := adminRoutes.Group("/games")
			{
				adminGameRoutes.POST("", handler.CreateGame)
				adminGameRoutes.PUT("/:id", handler.UpdateGame)
				adminGameRoutes.DELETE("/:id", handler.DeleteGame)
			}
		}
	}

	logrus.Infof("Server is running on :%s", config.AppConfig.Port)
	logrus.Info("Swagger UI is available at http://localhost:8080/swagger/index.html")
	logrus.Fatal(router.Run(":" + config.AppConfig.Port))
}
