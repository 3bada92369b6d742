package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/repos"
	"github.com/gradepoint/gradepoint-backend/internal/types"
	"github.com/gradepoint/gradepoint-backend/internal/validation"
)

type UpdateSettingsInput struct {
	Theme                *string `json:"theme" validate:"omitnil,oneof=light dark auto"`
	DefaultGradingSystem *string `json:"default_grading_system" validate:"omitnil,oneof=10-point 4-point"`
	DecimalPrecision     *int    `json:"decimal_precision" validate:"omitnil,min=1,max=4"`
	IncludeFailedCourses *bool   `json:"include_failed_courses"`
}

// SettingsService returns per-user display preferences, creating the row
// with defaults on first read.
type SettingsService interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.UserSettings, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateSettingsInput) (*types.UserSettings, error)
}

type settingsService struct {
	db       *gorm.DB
	settings repos.UserSettingsRepo
	log      *logger.Logger
}

func NewSettingsService(db *gorm.DB, settings repos.UserSettingsRepo, baseLog *logger.Logger) SettingsService {
	svcLog := baseLog.With("service", "SettingsService")
	return &settingsService{db: db, settings: settings, log: svcLog}
}

func (s *settingsService) Get(ctx context.Context, userID uuid.UUID) (*types.UserSettings, error) {
	row, err := s.settings.GetByUserID(ctx, nil, userID)
	if err != nil {
		s.log.Error("Failed to load settings", "user_id", userID.String(), "error", err)
		return nil, err
	}
	if row != nil {
		return row, nil
	}

	row = &types.UserSettings{
		UserID:               userID,
		Theme:                "auto",
		DefaultGradingSystem: "10-point",
		DecimalPrecision:     2,
		IncludeFailedCourses: true,
	}
	if _, err := s.settings.Create(ctx, nil, row); err != nil {
		s.log.Error("Failed to create settings", "user_id", userID.String(), "error", err)
		return nil, err
	}
	return row, nil
}

func (s *settingsService) Update(ctx context.Context, userID uuid.UUID, input UpdateSettingsInput) (*types.UserSettings, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	row, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Theme != nil {
		updates["theme"] = *input.Theme
	}
	if input.DefaultGradingSystem != nil {
		updates["default_grading_system"] = *input.DefaultGradingSystem
	}
	if input.DecimalPrecision != nil {
		updates["decimal_precision"] = *input.DecimalPrecision
	}
	if input.IncludeFailedCourses != nil {
		updates["include_failed_courses"] = *input.IncludeFailedCourses
	}

	if err := s.settings.Update(ctx, nil, row.ID, updates); err != nil {
		s.log.Error("Failed to update settings", "user_id", userID.String(), "error", err)
		return nil, err
	}
	return s.settings.GetByUserID(ctx, nil, userID)
}
