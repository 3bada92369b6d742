package types

import (
	"time"

	"github.com/google/uuid"
)

type UserSettings struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Theme                string    `gorm:"not null;default:'auto'" json:"theme"`
	DefaultGradingSystem string    `gorm:"column:default_grading_system;not null;default:'10-point'" json:"default_grading_system"`
	DecimalPrecision     int       `gorm:"column:decimal_precision;not null;default:2" json:"decimal_precision"`
	IncludeFailedCourses bool      `gorm:"column:include_failed_courses;not null;default:true" json:"include_failed_courses"`
	CreatedAt            time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time `gorm:"not null" json:"updated_at"`
}

func (UserSettings) TableName() string { return "user_settings" }
