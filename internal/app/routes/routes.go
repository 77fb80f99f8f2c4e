package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelichko/postline/internal/app/controllers"
	"github.com/avelichko/postline/internal/app/models/dto"
	"github.com/avelichko/postline/internal/middleware"
	"github.com/avelichko/postline/internal/pkg/pagecache"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	postController *controllers.PostController,
	groupController *controllers.GroupController,
	profileController *controllers.ProfileController,
	authMiddleware *middleware.AuthMiddleware,
	pageCache *pagecache.Cache,
) {
	// API version group
	v1 := router.Group("/api/v1")

	cached := middleware.CachePage(pageCache)
	invalidating := middleware.InvalidateCache(pageCache)

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.GET("/login", authController.LoginPage)
	}

	// --- Post routes ---
	posts := v1.Group("/posts")
	{
		posts.GET("", cached, postController.ListPosts)
		posts.GET("/:id", postController.GetPost)

		postsProtected := posts.Group("")
		postsProtected.Use(authMiddleware.RequireAuth())
		{
			postsProtected.POST("", invalidating, postController.CreatePost)
			postsProtected.PUT("/:id", invalidating, postController.UpdatePost)
			postsProtected.POST("/:id/comments", invalidating, postController.AddComment)
		}
	}

	// --- Group routes ---
	groups := v1.Group("/groups")
	{
		groups.GET("", cached, groupController.ListGroups)
		groups.GET("/:slug", groupController.GetGroup)
		groups.GET("/:slug/posts", cached, groupController.ListGroupPosts)

		groups.POST("", authMiddleware.RequireAuth(), invalidating, groupController.CreateGroup)
	}

	// --- Profile routes ---
	profiles := v1.Group("/profiles")
	{
		// The following flag varies per viewer, so the profile itself is
		// never page-cached
		profiles.GET("/:username", authMiddleware.OptionalAuth(), profileController.GetProfile)
		profiles.GET("/:username/posts", cached, profileController.ListProfilePosts)

		profilesProtected := profiles.Group("")
		profilesProtected.Use(authMiddleware.RequireAuth())
		{
			profilesProtected.POST("/:username/follow", invalidating, profileController.Follow)
			profilesProtected.DELETE("/:username/follow", invalidating, profileController.Unfollow)
		}
	}

	// --- Follow feed (per-user, never page-cached) ---
	v1.GET("/follow", authMiddleware.RequireAuth(), postController.Feed)

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Unknown paths get the standard error envelope instead of gin's
	// default empty 404
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Page not found"),
		})
	})
}
