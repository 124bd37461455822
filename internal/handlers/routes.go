package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-tracker/internal/middleware"
	"github.com/yukikurage/team-task-tracker/internal/models"
	"github.com/yukikurage/team-task-tracker/internal/services"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth     *services.AuthService
	Tasks    *services.TaskService
	Messages *services.MessageService
}

// RegisterRoutes mounts the API on r. A session middleware must already be installed.
func RegisterRoutes(r *gin.Engine, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	taskHandler := NewTaskHandler(svc.Tasks, svc.Messages)
	messageHandler := NewMessageHandler(svc.Messages)
	teamHandler := NewTeamHandler(svc.Tasks)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Team Task Tracker is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("/members", authHandler.ListMembers)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			taskAccess := middleware.RequireTaskAccess(svc.Tasks)

			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/self-assign", taskHandler.SelfAssignTask)
			tasks.GET("/:id", taskAccess, taskHandler.GetTask)
			tasks.PATCH("/:id/status", taskAccess, taskHandler.UpdateStatus)
			tasks.GET("/:id/messages", taskAccess, messageHandler.ListMessages)
			tasks.POST("/:id/messages", taskAccess, messageHandler.PostMessage)
		}

		// Team overview (boss only)
		team := api.Group("/team")
		team.Use(middleware.RequireAuth(), middleware.RequireRole(models.Role.MayManageUsers))
		{
			team.GET("/:username", teamHandler.GetMemberProfile)
		}
	}
}
