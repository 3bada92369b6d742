package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/platform/apierr"
	"github.com/gradepoint/gradepoint-backend/internal/repos"
	"github.com/gradepoint/gradepoint-backend/internal/types"
	"github.com/gradepoint/gradepoint-backend/internal/validation"
)

type CreateSubjectInput struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Grade   string  `json:"grade" validate:"required,min=1,max=10"`
	Credits float64 `json:"credits" validate:"required,min=0.5,max=10,creditstep"`
}

type UpdateSubjectInput struct {
	Name    *string  `json:"name" validate:"omitnil,min=1,max=100"`
	Grade   *string  `json:"grade" validate:"omitnil,min=1,max=10"`
	Credits *float64 `json:"credits" validate:"omitnil,min=0.5,max=10,creditstep"`
}

// SubjectService owns subject CRUD. Every mutation resolves the grade label
// against the user's grade configs, snapshots the points onto the row, and
// recomputes the owning semester's cache in the same transaction.
type SubjectService interface {
	ListBySemester(ctx context.Context, userID, semesterID uuid.UUID) ([]*types.Subject, error)
	Create(ctx context.Context, userID, semesterID uuid.UUID, input CreateSubjectInput) (*types.Subject, error)
	BulkCreate(ctx context.Context, userID, semesterID uuid.UUID, inputs []CreateSubjectInput) ([]*types.Subject, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateSubjectInput) (*types.Subject, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type subjectService struct {
	db           *gorm.DB
	subjects     repos.SubjectRepo
	semesters    repos.SemesterRepo
	gradeConfigs repos.GradeConfigRepo
	semesterSvc  SemesterService
	events       EventService
	cache        *AnalyticsCache
	log          *logger.Logger
}

func NewSubjectService(
	db *gorm.DB,
	subjects repos.SubjectRepo,
	semesters repos.SemesterRepo,
	gradeConfigs repos.GradeConfigRepo,
	semesterSvc SemesterService,
	events EventService,
	cache *AnalyticsCache,
	baseLog *logger.Logger,
) SubjectService {
	svcLog := baseLog.With("service", "SubjectService")
	return &subjectService{
		db:           db,
		subjects:     subjects,
		semesters:    semesters,
		gradeConfigs: gradeConfigs,
		semesterSvc:  semesterSvc,
		events:       events,
		cache:        cache,
		log:          svcLog,
	}
}

func (s *subjectService) ListBySemester(ctx context.Context, userID, semesterID uuid.UUID) ([]*types.Subject, error) {
	if _, err := s.ownedSemester(ctx, nil, userID, semesterID); err != nil {
		return nil, err
	}
	results, err := s.subjects.GetBySemesterID(ctx, nil, semesterID)
	if err != nil {
		s.log.Error("Failed to list subjects", "semester_id", semesterID.String(), "error", err)
		return nil, err
	}
	return results, nil
}

func (s *subjectService) Create(ctx context.Context, userID, semesterID uuid.UUID, input CreateSubjectInput) (*types.Subject, error) {
	rows, err := s.BulkCreate(ctx, userID, semesterID, []CreateSubjectInput{input})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (s *subjectService) BulkCreate(ctx context.Context, userID, semesterID uuid.UUID, inputs []CreateSubjectInput) ([]*types.Subject, error) {
	if len(inputs) == 0 {
		return nil, apierr.Validation("no subjects given")
	}
	for _, input := range inputs {
		if err := validation.Struct(input); err != nil {
			return nil, err
		}
	}
	if _, err := s.ownedSemester(ctx, nil, userID, semesterID); err != nil {
		return nil, err
	}

	var created []*types.Subject
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		maxOrder, err := s.subjects.MaxOrder(ctx, tx, semesterID)
		if err != nil {
			return err
		}

		rows := make([]*types.Subject, 0, len(inputs))
		for i, input := range inputs {
			points, err := s.resolveGrade(ctx, tx, userID, input.Grade)
			if err != nil {
				return err
			}
			rows = append(rows, &types.Subject{
				SemesterID:  semesterID,
				Name:        input.Name,
				Grade:       input.Grade,
				GradePoints: points,
				Credits:     input.Credits,
				Order:       maxOrder + 1 + i,
			})
		}

		if created, err = s.subjects.Create(ctx, tx, rows); err != nil {
			return err
		}
		if err := s.semesterSvc.RecalculateAggregates(ctx, tx, semesterID); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, userID, "subject.created", semesterID, map[string]interface{}{
			"count": len(created),
		})
	})
	if err != nil {
		s.log.Error("Failed to create subjects", "semester_id", semesterID.String(), "error", err)
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	return created, nil
}

func (s *subjectService) Update(ctx context.Context, userID, id uuid.UUID, input UpdateSubjectInput) (*types.Subject, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	subject, err := s.ownedSubject(ctx, nil, userID, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Credits != nil {
			updates["credits"] = *input.Credits
		}
		if input.Grade != nil {
			points, err := s.resolveGrade(ctx, tx, userID, *input.Grade)
			if err != nil {
				return err
			}
			updates["grade"] = *input.Grade
			updates["grade_points"] = points
		}

		if err := s.subjects.Update(ctx, tx, id, updates); err != nil {
			return err
		}
		if err := s.semesterSvc.RecalculateAggregates(ctx, tx, subject.SemesterID); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, userID, "subject.updated", id, nil)
	})
	if err != nil {
		s.log.Error("Failed to update subject", "subject_id", id.String(), "error", err)
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	return s.subjects.GetByID(ctx, nil, id)
}

func (s *subjectService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	subject, err := s.ownedSubject(ctx, nil, userID, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.subjects.DeleteByID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.semesterSvc.RecalculateAggregates(ctx, tx, subject.SemesterID); err != nil {
			return err
		}
		return s.events.Record(ctx, tx, userID, "subject.deleted", id, nil)
	})
	if err != nil {
		s.log.Error("Failed to delete subject", "subject_id", id.String(), "error", err)
		return err
	}

	s.cache.Invalidate(ctx, userID)
	return nil
}

// resolveGrade snapshots the points of the user's grade config matching the
// label. An unknown label is a validation error, not a silent zero.
func (s *subjectService) resolveGrade(ctx context.Context, tx *gorm.DB, userID uuid.UUID, grade string) (float64, error) {
	configs, err := s.gradeConfigs.GetByUserID(ctx, tx, userID)
	if err != nil {
		return 0, err
	}
	for _, cfg := range configs {
		if cfg.Name == grade {
			return cfg.Points, nil
		}
	}
	return 0, apierr.Validation("grade %q is not defined", grade)
}

func (s *subjectService) ownedSemester(ctx context.Context, tx *gorm.DB, userID, semesterID uuid.UUID) (*types.Semester, error) {
	semester, err := s.semesters.GetByID(ctx, tx, semesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("semester %s not found", semesterID)
		}
		return nil, err
	}
	if semester.UserID != userID {
		return nil, apierr.NotFound("semester %s not found", semesterID)
	}
	return semester, nil
}

func (s *subjectService) ownedSubject(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("subject %s not found", id)
		}
		return nil, err
	}
	if _, err := s.ownedSemester(ctx, tx, userID, subject.SemesterID); err != nil {
		return nil, apierr.NotFound("subject %s not found", id)
	}
	return subject, nil
}
