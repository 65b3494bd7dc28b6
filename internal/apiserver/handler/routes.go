package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/promptstash/promptstash/internal/apiserver/middleware"
	"github.com/promptstash/promptstash/internal/auth/jwt"
)

// RegisterRoutes wires the API surface onto the router. Login is the only
// unauthenticated endpoint.
func RegisterRoutes(router *gin.Engine, h *Handler, jwtService *jwt.Service) {
	api := router.Group("/api")
	api.POST("/auth/login", h.Login)

	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(jwtService))
	{
		authed.GET("/auth/me", h.GetSession)
		authed.POST("/auth/change-password", h.ChangePassword)

		authed.GET("/categories", h.ListCategories)
		authed.POST("/categories", h.CreateCategory)
		authed.PUT("/categories/:id", h.UpdateCategory)
		authed.DELETE("/categories/:id", h.DeleteCategory)

		authed.GET("/tags", h.ListTags)
		authed.POST("/tags", h.CreateTag)

		authed.GET("/tools", h.ListTools)
		authed.POST("/tools", h.CreateTool)
		authed.GET("/tools/:id", h.GetTool)
		authed.PUT("/tools/:id", h.UpdateTool)
		authed.DELETE("/tools/:id", h.DeleteTool)
		authed.POST("/tools/:id/archive", h.ArchiveTool)
		authed.POST("/tools/:id/unarchive", h.UnarchiveTool)
		authed.POST("/tools/:id/favorite", h.ToggleToolFavorite)

		authed.GET("/tweets", h.ListTweets)
		authed.POST("/tweets", h.CreateTweet)
		authed.GET("/tweets/:id", h.GetTweet)
		authed.PUT("/tweets/:id", h.UpdateTweet)
		authed.DELETE("/tweets/:id", h.DeleteTweet)
		authed.POST("/tweets/:id/archive", h.ArchiveTweet)
		authed.POST("/tweets/:id/unarchive", h.UnarchiveTweet)
		authed.POST("/tweets/:id/favorite", h.ToggleTweetFavorite)

		authed.GET("/prompts", h.ListPrompts)
		authed.POST("/prompts", h.CreatePrompt)
		authed.GET("/prompts/:id", h.GetPrompt)
		authed.PUT("/prompts/:id", h.UpdatePrompt)
		authed.DELETE("/prompts/:id", h.DeletePrompt)
		authed.POST("/prompts/:id/favorite", h.TogglePromptFavorite)
		authed.GET("/prompts/:id/tests", h.ListPromptTests)
		authed.POST("/prompts/:id/tests", h.CreatePromptTest)
		authed.POST("/prompts/:id/render", h.RenderPrompt)

		authed.GET("/attachments", h.ListAttachments)
		authed.POST("/upload", h.UploadAttachment)
		authed.DELETE("/upload", h.DeleteAttachment)

		authed.GET("/activity", h.ListActivity)

		authed.GET("/proxy-image", h.ProxyImage)
		authed.GET("/youtube/playlist", h.GetYouTubePlaylist)
	}
}
