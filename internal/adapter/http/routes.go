package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahulserver/task-management-backend/internal/adapter/http/handlers"
	"github.com/rahulserver/task-management-backend/internal/adapter/http/middleware"
	"github.com/rahulserver/task-management-backend/internal/core/ports"
	"github.com/rahulserver/task-management-backend/pkg/apierrors"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Tasks  *handlers.TaskHandler
	Posts  *handlers.PostHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, verifier ports.IdentityVerifier) {
	r.NoRoute(middleware.LanguageMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgRouteNotFound, middleware.GetLang(c)))
	})

	requireAuth := middleware.Authenticate(verifier)

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		tasks := api.Group("/tasks", requireAuth)
		tasks.POST("", h.Tasks.CreateTask)
		tasks.GET("", h.Tasks.ListTasks)
		tasks.PUT("/positions", h.Tasks.UpdateTaskPositions)
		tasks.GET("/:id", h.Tasks.GetTask)
		tasks.PUT("/:id", h.Tasks.UpdateTask)
		tasks.DELETE("/:id", h.Tasks.DeleteTask)

		posts := api.Group("/posts")
		posts.GET("/feed", h.Posts.ListFeed)
		posts.GET("/:id", middleware.OptionalAuthenticate(verifier), h.Posts.GetPost)
		posts.POST("", requireAuth, h.Posts.CreatePost)
		posts.PUT("/:id", requireAuth, h.Posts.UpdatePost)
		posts.DELETE("/:id", requireAuth, h.Posts.DeletePost)
		posts.POST("/:id/comments", requireAuth, h.Posts.AddComment)
		posts.POST("/:id/likes", requireAuth, h.Posts.TogglePostLike)
		posts.POST("/:id/comments/:commentId/likes", requireAuth, h.Posts.ToggleCommentLike)
	}
}
