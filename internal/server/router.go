package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gradepoint/gradepoint-backend/internal/handlers"
	"github.com/gradepoint/gradepoint-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware     *middleware.AuthMiddleware
	SemesterHandler    *handlers.SemesterHandler
	SubjectHandler     *handlers.SubjectHandler
	GradeConfigHandler *handlers.GradeConfigHandler
	AnalyticsHandler   *handlers.AnalyticsHandler
	SettingsHandler    *handlers.SettingsHandler
	EventHandler       *handlers.EventHandler
	AllowOrigins       []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Semesters
	api.GET("/semesters", cfg.SemesterHandler.List)
	api.POST("/semesters", cfg.SemesterHandler.Create)
	api.GET("/semesters/:id", cfg.SemesterHandler.Get)
	api.PATCH("/semesters/:id", cfg.SemesterHandler.Update)
	api.DELETE("/semesters/:id", cfg.SemesterHandler.Delete)

	// Subjects
	api.GET("/semesters/:id/subjects", cfg.SubjectHandler.ListBySemester)
	api.POST("/semesters/:id/subjects", cfg.SubjectHandler.Create)
	api.POST("/semesters/:id/subjects/bulk", cfg.SubjectHandler.BulkCreate)
	api.PATCH("/subjects/:id", cfg.SubjectHandler.Update)
	api.DELETE("/subjects/:id", cfg.SubjectHandler.Delete)

	// Grades
	api.GET("/grades", cfg.GradeConfigHandler.List)
	api.POST("/grades", cfg.GradeConfigHandler.Create)
	api.PATCH("/grades/:id", cfg.GradeConfigHandler.Update)
	api.DELETE("/grades/:id", cfg.GradeConfigHandler.Delete)
	api.POST("/grades/reset", cfg.GradeConfigHandler.Reset)

	// Analytics
	api.GET("/analytics", cfg.AnalyticsHandler.Get)
	api.GET("/overview", cfg.AnalyticsHandler.Overview)

	// Settings
	api.GET("/settings", cfg.SettingsHandler.Get)
	api.PATCH("/settings", cfg.SettingsHandler.Update)

	// Events
	api.GET("/events", cfg.EventHandler.Recent)

	return router
}
