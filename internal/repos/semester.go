package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/platform/apierr"
	"github.com/gradepoint/gradepoint-backend/internal/types"
)

type SemesterRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Semester) (*types.Semester, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Semester, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Semester, error)
	GetByUserIDChronological(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Semester, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	MaxOrder(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error)
	UpdateAggregates(ctx context.Context, tx *gorm.DB, id uuid.UUID, gpa, totalCredits float64, expectedVersion int) error
}

type semesterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSemesterRepo(db *gorm.DB, baseLog *logger.Logger) SemesterRepo {
	repoLog := baseLog.With("repo", "SemesterRepo")
	return &semesterRepo{db: db, log: repoLog}
}

func (r *semesterRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Semester) (*types.Semester, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *semesterRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Semester, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Semester
	if err := transaction.WithContext(ctx).
		Preload("Subjects", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByUserID returns the user's semesters newest year first, the ordering
// used by list views.
func (r *semesterRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Semester, error) {
	return r.listByUser(ctx, tx, userID, "year DESC, display_order ASC")
}

// GetByUserIDChronological returns oldest year first; the cumulative series
// and analytics depend on this order.
func (r *semesterRepo) GetByUserIDChronological(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Semester, error) {
	return r.listByUser(ctx, tx, userID, "year ASC, display_order ASC")
}

func (r *semesterRepo) listByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, order string) ([]*types.Semester, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Semester
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Subjects", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("user_id = ?", userID).
		Order(order).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *semesterRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Semester{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return err
	}
	return nil
}

func (r *semesterRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("semester_id = ?", id).
		Delete(&types.Subject{}).Error; err != nil {
		return err
	}
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Semester{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *semesterRepo) MaxOrder(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var max *int
	if err := transaction.WithContext(ctx).
		Model(&types.Semester{}).
		Where("user_id = ?", userID).
		Select("MAX(display_order)").
		Scan(&max).Error; err != nil {
		return -1, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// UpdateAggregates writes the derived gpa/total_credits cache. The write is
// guarded by the semester's version token: a stale expectedVersion means a
// concurrent mutation recomputed the cache first, and the caller must
// re-read before writing.
func (r *semesterRepo) UpdateAggregates(ctx context.Context, tx *gorm.DB, id uuid.UUID, gpa, totalCredits float64, expectedVersion int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Semester{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"gpa":           gpa,
			"total_credits": totalCredits,
			"version":       gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierr.Conflict("semester %s was modified concurrently", id)
	}
	return nil
}
