package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gradepoint/gradepoint-backend/internal/gpa"
	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/repos"
	"github.com/gradepoint/gradepoint-backend/internal/types"
)

const rankedSubjectLimit = 5

// AnalyticsData is the full computed view over a user's record: the CGPA,
// per-semester and cumulative series, grade distribution, yearly averages
// and ranked subjects. It is derived purely from semester/subject rows and
// cached per user.
type AnalyticsData struct {
	CGPA              float64               `json:"cgpa"`
	TotalCredits      float64               `json:"total_credits"`
	TotalSubjects     int                   `json:"total_subjects"`
	TotalSemesters    int                   `json:"total_semesters"`
	SemesterGPAs      []gpa.SemesterEntry   `json:"semester_gpas"`
	CumulativeSeries  []gpa.CumulativePoint `json:"cumulative_series"`
	GradeDistribution []gpa.GradeShare      `json:"grade_distribution"`
	YearlyAverages    []gpa.YearAverage     `json:"yearly_averages"`
	BestSemester      *gpa.SemesterEntry    `json:"best_semester,omitempty"`
	WorstSemester     *gpa.SemesterEntry    `json:"worst_semester,omitempty"`
	TopSubjects       []*types.Subject      `json:"top_subjects"`
	BottomSubjects    []*types.Subject      `json:"bottom_subjects"`
	Performance       gpa.Level             `json:"performance"`
}

// Overview bundles the dashboard payload: analytics plus settings and the
// recent audit trail, fetched concurrently.
type Overview struct {
	Analytics    *AnalyticsData      `json:"analytics"`
	Settings     *types.UserSettings `json:"settings"`
	RecentEvents []*types.UserEvent  `json:"recent_events"`
}

type AnalyticsService interface {
	GetAnalytics(ctx context.Context, userID uuid.UUID) (*AnalyticsData, error)
	GetOverview(ctx context.Context, userID uuid.UUID) (*Overview, error)
}

type analyticsService struct {
	semesters repos.SemesterRepo
	settings  SettingsService
	events    EventService
	cache     *AnalyticsCache
	log       *logger.Logger
}

func NewAnalyticsService(
	semesters repos.SemesterRepo,
	settings SettingsService,
	events EventService,
	cache *AnalyticsCache,
	baseLog *logger.Logger,
) AnalyticsService {
	svcLog := baseLog.With("service", "AnalyticsService")
	return &analyticsService{
		semesters: semesters,
		settings:  settings,
		events:    events,
		cache:     cache,
		log:       svcLog,
	}
}

func (s *analyticsService) GetAnalytics(ctx context.Context, userID uuid.UUID) (*AnalyticsData, error) {
	if data, ok := s.cache.Get(ctx, userID); ok {
		return data, nil
	}

	data, err := s.compute(ctx, userID)
	if err != nil {
		s.log.Error("Failed to compute analytics", "user_id", userID.String(), "error", err)
		return nil, err
	}

	s.cache.Set(ctx, userID, data)
	return data, nil
}

func (s *analyticsService) GetOverview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	overview := &Overview{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := s.GetAnalytics(gctx, userID)
		if err != nil {
			return err
		}
		overview.Analytics = data
		return nil
	})
	g.Go(func() error {
		settings, err := s.settings.Get(gctx, userID)
		if err != nil {
			return err
		}
		overview.Settings = settings
		return nil
	})
	g.Go(func() error {
		events, err := s.events.Recent(gctx, userID, 20)
		if err != nil {
			return err
		}
		overview.RecentEvents = events
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Error("Failed to build overview", "user_id", userID.String(), "error", err)
		return nil, err
	}
	return overview, nil
}

func (s *analyticsService) compute(ctx context.Context, userID uuid.UUID) (*AnalyticsData, error) {
	// Chronological order pins the cumulative series.
	semesters, err := s.semesters.GetByUserIDChronological(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	allSubjects := make([]*types.Subject, 0)
	var totalCredits float64
	for _, sem := range semesters {
		allSubjects = append(allSubjects, sem.Subjects...)
		totalCredits += gpa.TotalCredits(sem.Subjects)
	}

	entries := gpa.BySemester(semesters)
	best, worst := gpa.BestWorst(entries)
	cgpa := gpa.CGPA(semesters)

	return &AnalyticsData{
		CGPA:              cgpa,
		TotalCredits:      totalCredits,
		TotalSubjects:     len(allSubjects),
		TotalSemesters:    len(semesters),
		SemesterGPAs:      entries,
		CumulativeSeries:  gpa.CumulativeSeries(semesters),
		GradeDistribution: gpa.Distribution(allSubjects),
		YearlyAverages:    gpa.YearlyAverages(entries),
		BestSemester:      best,
		WorstSemester:     worst,
		TopSubjects:       gpa.TopSubjects(allSubjects, rankedSubjectLimit),
		BottomSubjects:    gpa.BottomSubjects(allSubjects, rankedSubjectLimit),
		Performance:       gpa.PerformanceLevel(cgpa),
	}, nil
}
