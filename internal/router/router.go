package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/vidstream/internal/handler"
	"github.com/user/vidstream/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 用户 ====================
	users := r.Group("/api/users")
	{
		users.POST("/signup", h.Signup)
		users.POST("/login", h.Login)

		// 需要登录
		authed := users.Group("")
		authed.Use(middleware.RequireAuth(h.Config.AppSecret))
		{
			authed.PUT("/profile", h.UpdateProfile)
			authed.GET("/last-viewed", h.LastViewed)
			authed.POST("/watch-history", h.UpsertWatchHistory)
			authed.GET("/watch-history/:videoId", h.WatchHistoryByVideo)
		}

		// 需要管理员
		admin := users.Group("")
		admin.Use(middleware.RequireAuth(h.Config.AppSecret))
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", h.ListUsers)
		}
	}

	// ==================== 视频 ====================
	videos := r.Group("/api/videos")
	{
		videos.GET("", h.ListVideos)
		videos.GET("/:id", h.GetVideo)

		// 媒体库维护操作仅限管理员
		admin := videos.Group("")
		admin.Use(middleware.RequireAuth(h.Config.AppSecret))
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/refresh", h.RefreshLibrary)
			admin.PUT("/:id", h.UpdateVideo)
		}
	}
}
