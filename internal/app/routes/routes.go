package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cphunt/backend/internal/app/controllers"
	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/app/models/dto"
	"github.com/cphunt/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	feedController *controllers.FeedController,
	productController *controllers.ProductController,
	launchController *controllers.LaunchController,
	eventController *controllers.EventController,
	applicationController *controllers.ApplicationController,
	socialController *controllers.SocialController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/signup", authController.Register) // legacy client alias
		auth.POST("/login", authController.Login)
	}

	// --- Public feed and launch routes ---
	v1.GET("/feed", feedController.GetFeed)

	// The optional middleware lets signed-in viewers see their own upvote state.

	launches := v1.Group("/launches")
	{
		launches.GET("/:id", authMiddleware.OptionalJWTAuth(), launchController.GetLaunch)
		launches.GET("/:id/comments", launchController.ListComments)
	}

	// --- Public product and topic routes ---
	v1.GET("/products/:slug", productController.GetProduct)

	topics := v1.Group("/topics")
	{
		topics.GET("", productController.ListTopics)
		topics.GET("/:slug", productController.GetTopic)
		topics.GET("/:slug/products", productController.ListTopicProducts)
	}

	// Public user profiles
	users := v1.Group("/users")
	{
		users.GET("/:username", profileController.GetUserByUsername)
		users.GET("/:username/products", profileController.ListUserProducts)
	}

	// --- Public event routes ---
	events := v1.Group("/events")
	{
		events.GET("", eventController.ListEvents)
		events.GET("/:slug", eventController.GetEvent)
		events.GET("/:slug/participants", eventController.Participants)
		events.GET("/:slug/stats", eventController.Stats)
		events.GET("/:slug/teammates", eventController.ListTeammatePosts)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/profile", profileController.GetProfile)
		authenticated.PUT("/profile", profileController.UpdateProfile)

		authenticated.POST("/products", productController.CreateProduct)

		authenticated.POST("/follow", socialController.Follow)
		authenticated.GET("/notifications", socialController.Notifications)
		authenticated.POST("/reports", socialController.Report)

		launchesProtected := authenticated.Group("/launches")
		{
			launchesProtected.POST("/:id/upvote", launchController.Upvote)
			launchesProtected.DELETE("/:id/upvote", launchController.RemoveUpvote)
			launchesProtected.POST("/:id/comments", launchController.CreateComment)
		}

		eventsProtected := authenticated.Group("/events")
		{
			eventsProtected.GET("/:slug/registration", eventController.GetRegistration)
			eventsProtected.POST("/:slug/register", eventController.Register)
			eventsProtected.POST("/:slug/teammates", eventController.CreateTeammatePost)

			eventsProtected.GET("/:slug/application", applicationController.GetApplication)
			eventsProtected.POST("/:slug/application", applicationController.SaveDraft)
			eventsProtected.POST("/:slug/application/submit", applicationController.Submit)
			eventsProtected.POST("/:slug/application/team", applicationController.AddTeamMember)
			eventsProtected.DELETE("/:slug/application/team", applicationController.RemoveTeamMember)
		}

		// Admin-only schema operations
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/overview", adminController.Overview)
			admin.GET("/events/:slug/applications", adminController.ListEventApplications)
			admin.GET("/schema/status", adminController.SchemaStatus)
			admin.POST("/schema/migrate", adminController.RunMigration)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})

	// Swagger routes are set up in bootstrap.go already
}
