package app

import (
	"gorm.io/gorm"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/repos"
)

type Repos struct {
	Semester     repos.SemesterRepo
	Subject      repos.SubjectRepo
	GradeConfig  repos.GradeConfigRepo
	UserSettings repos.UserSettingsRepo
	UserEvent    repos.UserEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Semester:     repos.NewSemesterRepo(db, log),
		Subject:      repos.NewSubjectRepo(db, log),
		GradeConfig:  repos.NewGradeConfigRepo(db, log),
		UserSettings: repos.NewUserSettingsRepo(db, log),
		UserEvent:    repos.NewUserEventRepo(db, log),
	}
}
