package app

import (
	"github.com/gradepoint/gradepoint-backend/internal/handlers"
	"github.com/gradepoint/gradepoint-backend/internal/logger"
)

type Handlers struct {
	Semester    *handlers.SemesterHandler
	Subject     *handlers.SubjectHandler
	GradeConfig *handlers.GradeConfigHandler
	Analytics   *handlers.AnalyticsHandler
	Settings    *handlers.SettingsHandler
	Event       *handlers.EventHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Semester:    handlers.NewSemesterHandler(log, serviceset.Semester),
		Subject:     handlers.NewSubjectHandler(log, serviceset.Subject),
		GradeConfig: handlers.NewGradeConfigHandler(log, serviceset.GradeConfig),
		Analytics:   handlers.NewAnalyticsHandler(log, serviceset.Analytics),
		Settings:    handlers.NewSettingsHandler(log, serviceset.Settings),
		Event:       handlers.NewEventHandler(log, serviceset.Event),
	}
}
