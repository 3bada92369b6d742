package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/types"
)

type SubjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Subject) ([]*types.Subject, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Subject, error)
	GetBySemesterID(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID) ([]*types.Subject, error)
	GetByUserAndGrade(ctx context.Context, tx *gorm.DB, userID uuid.UUID, grade string) ([]*types.Subject, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	MaxOrder(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID) (int, error)
	ReplaceGrade(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, newGrade string, newGradePoints float64) error
}

type subjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) SubjectRepo {
	repoLog := baseLog.With("repo", "SubjectRepo")
	return &subjectRepo{db: db, log: repoLog}
}

func (r *subjectRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Subject) ([]*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Subject{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *subjectRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Subject
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *subjectRepo) GetBySemesterID(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID) ([]*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Subject
	if semesterID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("semester_id = ?", semesterID).
		Order("display_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByUserAndGrade finds every subject of the user still referencing a
// grade label, reaching subjects through their owning semesters.
func (r *subjectRepo) GetByUserAndGrade(ctx context.Context, tx *gorm.DB, userID uuid.UUID, grade string) ([]*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Subject
	if userID == uuid.Nil || grade == "" {
		return results, nil
	}

	semesterIDs := transaction.WithContext(ctx).
		Model(&types.Semester{}).
		Select("id").
		Where("user_id = ?", userID)

	if err := transaction.WithContext(ctx).
		Where("grade = ? AND semester_id IN (?)", grade, semesterIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *subjectRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Subject{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return err
	}
	return nil
}

func (r *subjectRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Subject{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *subjectRepo) MaxOrder(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var max *int
	if err := transaction.WithContext(ctx).
		Model(&types.Subject{}).
		Where("semester_id = ?", semesterID).
		Select("MAX(display_order)").
		Scan(&max).Error; err != nil {
		return -1, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// ReplaceGrade rewrites both the grade label and the grade_points snapshot
// for every listed subject in one statement.
func (r *subjectRepo) ReplaceGrade(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, newGrade string, newGradePoints float64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Subject{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"grade":        newGrade,
			"grade_points": newGradePoints,
		}).Error; err != nil {
		return err
	}
	return nil
}
