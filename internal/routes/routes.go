package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"synergysphere/internal/auth"
	"synergysphere/internal/handlers"
	"synergysphere/internal/middleware"
	"synergysphere/internal/realtime"
	"synergysphere/internal/repository"
	"synergysphere/internal/session"
)

// Deps wires the router to the application core.
type Deps struct {
	Repo    *repository.Repository
	Session *session.Session
	Issuer  *auth.Issuer
	Hub     *realtime.Hub
	Logger  *zap.Logger
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept-Language, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func SetupRoutes(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = zap.L()
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery(), middleware.GinZapMiddleware(logger), cors(), middleware.LanguageMiddleware())

	h := handlers.New(handlers.Deps{
		Repo:    d.Repo,
		Session: d.Session,
		Issuer:  d.Issuer,
		Hub:     d.Hub,
		Logger:  logger,
	})
	authRequired := middleware.JWTAuthMiddleware(d.Issuer, d.Session)

	ginRouter.GET("/health", handlers.Health)
	ginRouter.GET("/ws", authRequired, h.WebSocket)

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/login", h.Login)
		api.POST("/register", h.Register)
		api.GET("/session", h.GetSession)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(authRequired)
	{
		protectedRoutes.POST("/logout", h.Logout)
		protectedRoutes.GET("/users", h.GetAllUsers)

		protectedRoutes.GET("/projects", h.GetProjects)
		protectedRoutes.POST("/projects", h.CreateProject)
		protectedRoutes.GET("/projects/:id", h.GetProjectByID)
		protectedRoutes.GET("/projects/:id/tasks", h.GetProjectTasks)
		protectedRoutes.POST("/projects/:id/tasks", h.CreateTask)

		protectedRoutes.GET("/tasks/:id", h.GetTaskByID)
		protectedRoutes.PUT("/tasks/:id", h.UpdateTask)
		protectedRoutes.PATCH("/tasks/:id/status", h.UpdateTaskStatus)
		protectedRoutes.PATCH("/tasks/:id/priority", h.UpdateTaskPriority)
		protectedRoutes.DELETE("/tasks/:id", h.DeleteTask)

		protectedRoutes.GET("/dashboard", h.GetDashboard)
		protectedRoutes.GET("/notifications", h.GetNotifications)
	}

	return ginRouter
}
