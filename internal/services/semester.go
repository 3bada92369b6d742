package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradepoint/gradepoint-backend/internal/gpa"
	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/platform/apierr"
	"github.com/gradepoint/gradepoint-backend/internal/repos"
	"github.com/gradepoint/gradepoint-backend/internal/types"
	"github.com/gradepoint/gradepoint-backend/internal/validation"
)

type CreateSemesterInput struct {
	Name string  `json:"name" validate:"required,min=1,max=100"`
	Year int     `json:"year" validate:"required,min=2000,max=2100"`
	Term *string `json:"term" validate:"omitnil,oneof=fall spring summer winter"`
}

type UpdateSemesterInput struct {
	Name *string `json:"name" validate:"omitnil,min=1,max=100"`
	Year *int    `json:"year" validate:"omitnil,min=2000,max=2100"`
	Term *string `json:"term" validate:"omitnil,oneof=fall spring summer winter"`
}

// SemesterService owns semester CRUD and the derived gpa/total_credits
// cache. RecalculateAggregates is shared with the subject and grade-config
// services, which mutate subjects and must refresh the cache in the same
// transaction.
type SemesterService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Semester, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*types.Semester, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateSemesterInput) (*types.Semester, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateSemesterInput) (*types.Semester, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	RecalculateAggregates(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID) error
}

type semesterService struct {
	db        *gorm.DB
	semesters repos.SemesterRepo
	subjects  repos.SubjectRepo
	events    EventService
	cache     *AnalyticsCache
	log       *logger.Logger
}

func NewSemesterService(
	db *gorm.DB,
	semesters repos.SemesterRepo,
	subjects repos.SubjectRepo,
	events EventService,
	cache *AnalyticsCache,
	baseLog *logger.Logger,
) SemesterService {
	svcLog := baseLog.With("service", "SemesterService")
	return &semesterService{
		db:        db,
		semesters: semesters,
		subjects:  subjects,
		events:    events,
		cache:     cache,
		log:       svcLog,
	}
}

func (s *semesterService) List(ctx context.Context, userID uuid.UUID) ([]*types.Semester, error) {
	results, err := s.semesters.GetByUserID(ctx, nil, userID)
	if err != nil {
		s.log.Error("Failed to list semesters", "user_id", userID.String(), "error", err)
		return nil, err
	}
	return results, nil
}

func (s *semesterService) Get(ctx context.Context, userID, id uuid.UUID) (*types.Semester, error) {
	return s.getOwned(ctx, nil, userID, id)
}

func (s *semesterService) Create(ctx context.Context, userID uuid.UUID, input CreateSemesterInput) (*types.Semester, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var created *types.Semester
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		maxOrder, err := s.semesters.MaxOrder(ctx, tx, userID)
		if err != nil {
			return err
		}
		row := &types.Semester{
			UserID: userID,
			Name:   input.Name,
			Year:   input.Year,
			Term:   input.Term,
			Order:  maxOrder + 1,
		}
		if created, err = s.semesters.Create(ctx, tx, row); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, userID, "semester.created", created.ID, map[string]interface{}{
			"name": created.Name,
			"year": created.Year,
		})
	})
	if err != nil {
		s.log.Error("Failed to create semester", "user_id", userID.String(), "error", err)
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	return created, nil
}

func (s *semesterService) Update(ctx context.Context, userID, id uuid.UUID, input UpdateSemesterInput) (*types.Semester, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if _, err := s.getOwned(ctx, nil, userID, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Year != nil {
		updates["year"] = *input.Year
	}
	if input.Term != nil {
		updates["term"] = *input.Term
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.semesters.Update(ctx, tx, id, updates); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, userID, "semester.updated", id, nil)
	})
	if err != nil {
		s.log.Error("Failed to update semester", "user_id", userID.String(), "error", err)
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	return s.getOwned(ctx, nil, userID, id)
}

func (s *semesterService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, nil, userID, id); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.semesters.DeleteByID(ctx, tx, id); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, userID, "semester.deleted", id, nil)
	})
	if err != nil {
		s.log.Error("Failed to delete semester", "user_id", userID.String(), "error", err)
		return err
	}

	s.cache.Invalidate(ctx, userID)
	return nil
}

// RecalculateAggregates recomputes one semester's gpa/total_credits from its
// current subjects and writes them under the semester's version token. Runs
// inside the caller's transaction; callers pass the tx that performed the
// subject mutation.
func (s *semesterService) RecalculateAggregates(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID) error {
	semester, err := s.semesters.GetByID(ctx, tx, semesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("semester %s not found", semesterID)
		}
		return err
	}

	subjects, err := s.subjects.GetBySemesterID(ctx, tx, semesterID)
	if err != nil {
		return err
	}

	return s.semesters.UpdateAggregates(
		ctx, tx, semesterID,
		gpa.SemesterGPA(subjects),
		gpa.TotalCredits(subjects),
		semester.Version,
	)
}

func (s *semesterService) getOwned(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Semester, error) {
	semester, err := s.semesters.GetByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("semester %s not found", id)
		}
		s.log.Error("Failed to load semester", "semester_id", id.String(), "error", err)
		return nil, err
	}
	if semester.UserID != userID {
		return nil, apierr.NotFound("semester %s not found", id)
	}
	return semester, nil
}
