package app

import (
	"github.com/gin-gonic/gin"

	"github.com/gradepoint/gradepoint-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:     middlewareset.Auth,
		SemesterHandler:    handlerset.Semester,
		SubjectHandler:     handlerset.Subject,
		GradeConfigHandler: handlerset.GradeConfig,
		AnalyticsHandler:   handlerset.Analytics,
		SettingsHandler:    handlerset.Settings,
		EventHandler:       handlerset.Event,
		AllowOrigins:       cfg.AllowOrigins,
	})
}
