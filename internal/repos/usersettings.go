package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/types"
)

type UserSettingsRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserSettings, error)
	Create(ctx context.Context, tx *gorm.DB, row *types.UserSettings) (*types.UserSettings, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type userSettingsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserSettingsRepo(db *gorm.DB, baseLog *logger.Logger) UserSettingsRepo {
	repoLog := baseLog.With("repo", "UserSettingsRepo")
	return &userSettingsRepo{db: db, log: repoLog}
}

// GetByUserID returns nil when the user has no settings row yet.
func (r *userSettingsRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserSettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.UserSettings
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *userSettingsRepo) Create(ctx context.Context, tx *gorm.DB, row *types.UserSettings) (*types.UserSettings, error) {
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

func (r *userSettingsRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.UserSettings{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return err
	}
	return nil
}
