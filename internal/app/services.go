package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/gradepoint/gradepoint-backend/internal/gradescale"
	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/services"
)

type Services struct {
	Event       services.EventService
	Semester    services.SemesterService
	Subject     services.SubjectService
	GradeConfig services.GradeConfigService
	Settings    services.SettingsService
	Analytics   services.AnalyticsService
	Cache       *services.AnalyticsCache
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	rdb := newRedisClient(cfg, log)
	cache := services.NewAnalyticsCache(rdb, cfg.AnalyticsCacheTTL, log)

	seed := gradescale.Get(gradescale.DefaultSystem)
	if cfg.GradeScaleFile != "" {
		scale, err := gradescale.LoadFile(cfg.GradeScaleFile)
		if err != nil {
			return Services{}, fmt.Errorf("load grade scale: %w", err)
		}
		log.Info("Loaded grade scale override", "system", scale.System, "grades", len(scale.Grades))
		seed = scale.Grades
	}

	event := services.NewEventService(reposet.UserEvent, log)
	semester := services.NewSemesterService(db, reposet.Semester, reposet.Subject, event, cache, log)
	subject := services.NewSubjectService(db, reposet.Subject, reposet.Semester, reposet.GradeConfig, semester, event, cache, log)
	gradeConfig := services.NewGradeConfigService(db, reposet.GradeConfig, reposet.Subject, semester, event, cache, seed, log)
	settings := services.NewSettingsService(db, reposet.UserSettings, log)
	analytics := services.NewAnalyticsService(reposet.Semester, settings, event, cache, log)

	return Services{
		Event:       event,
		Semester:    semester,
		Subject:     subject,
		GradeConfig: gradeConfig,
		Settings:    settings,
		Analytics:   analytics,
		Cache:       cache,
	}, nil
}
