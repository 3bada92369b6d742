package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/types"
)

type GradeConfigRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.GradeConfig) ([]*types.GradeConfig, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.GradeConfig, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.GradeConfig, error)
	GetByUserAndPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, points float64) (*types.GradeConfig, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteNonDefaultByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	MaxOrder(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error)
}

type gradeConfigRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGradeConfigRepo(db *gorm.DB, baseLog *logger.Logger) GradeConfigRepo {
	repoLog := baseLog.With("repo", "GradeConfigRepo")
	return &gradeConfigRepo{db: db, log: repoLog}
}

func (r *gradeConfigRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.GradeConfig) ([]*types.GradeConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.GradeConfig{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gradeConfigRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.GradeConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.GradeConfig
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *gradeConfigRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.GradeConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.GradeConfig
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("display_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByUserAndPoints returns nil (not an error) when no config of the user
// carries the points value; it backs the duplicate-points guard.
func (r *gradeConfigRepo) GetByUserAndPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, points float64) (*types.GradeConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.GradeConfig
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND points = ?", userID, points).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *gradeConfigRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.GradeConfig{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return err
	}
	return nil
}

func (r *gradeConfigRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.GradeConfig{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *gradeConfigRepo) DeleteNonDefaultByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, false).
		Delete(&types.GradeConfig{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *gradeConfigRepo) MaxOrder(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var max *int
	if err := transaction.WithContext(ctx).
		Model(&types.GradeConfig{}).
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
