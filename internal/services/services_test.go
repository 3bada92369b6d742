package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/repos"
	"github.com/gradepoint/gradepoint-backend/internal/types"
)

type testEnv struct {
	db           *gorm.DB
	semesterRepo repos.SemesterRepo
	subjectRepo  repos.SubjectRepo
	gradeRepo    repos.GradeConfigRepo
	events       EventService
	semesters    SemesterService
	subjects     SubjectService
	gradeConfigs GradeConfigService
	settings     SettingsService
	analytics    AnalyticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Semester{},
		&types.Subject{},
		&types.GradeConfig{},
		&types.UserSettings{},
		&types.UserEvent{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	cache := NewAnalyticsCache(nil, 0, log)

	semesterRepo := repos.NewSemesterRepo(db, log)
	subjectRepo := repos.NewSubjectRepo(db, log)
	gradeRepo := repos.NewGradeConfigRepo(db, log)
	settingsRepo := repos.NewUserSettingsRepo(db, log)
	eventRepo := repos.NewUserEventRepo(db, log)

	events := NewEventService(eventRepo, log)
	semesters := NewSemesterService(db, semesterRepo, subjectRepo, events, cache, log)
	subjects := NewSubjectService(db, subjectRepo, semesterRepo, gradeRepo, semesters, events, cache, log)
	gradeConfigs := NewGradeConfigService(db, gradeRepo, subjectRepo, semesters, events, cache, nil, log)
	settings := NewSettingsService(db, settingsRepo, log)
	analytics := NewAnalyticsService(semesterRepo, settings, events, cache, log)

	return &testEnv{
		db:           db,
		semesterRepo: semesterRepo,
		subjectRepo:  subjectRepo,
		gradeRepo:    gradeRepo,
		events:       events,
		semesters:    semesters,
		subjects:     subjects,
		gradeConfigs: gradeConfigs,
		settings:     settings,
		analytics:    analytics,
	}
}

func (e *testEnv) mustSeedGrades(t *testing.T, userID uuid.UUID) []*types.GradeConfig {
	t.Helper()
	configs, err := e.gradeConfigs.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("seed grade configs: %v", err)
	}
	return configs
}

func (e *testEnv) mustCreateSemester(t *testing.T, userID uuid.UUID, name string, year int) *types.Semester {
	t.Helper()
	semester, err := e.semesters.Create(context.Background(), userID, CreateSemesterInput{Name: name, Year: year})
	if err != nil {
		t.Fatalf("create semester %s: %v", name, err)
	}
	return semester
}

func (e *testEnv) mustCreateSubject(t *testing.T, userID, semesterID uuid.UUID, name, grade string, credits float64) *types.Subject {
	t.Helper()
	subject, err := e.subjects.Create(context.Background(), userID, semesterID, CreateSubjectInput{
		Name:    name,
		Grade:   grade,
		Credits: credits,
	})
	if err != nil {
		t.Fatalf("create subject %s: %v", name, err)
	}
	return subject
}

func (e *testEnv) reloadSemester(t *testing.T, id uuid.UUID) *types.Semester {
	t.Helper()
	semester, err := e.semesterRepo.GetByID(context.Background(), nil, id)
	if err != nil {
		t.Fatalf("reload semester: %v", err)
	}
	return semester
}
