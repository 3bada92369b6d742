package types

import (
	"time"

	"github.com/google/uuid"
)

// GradeConfig is a named point value on the user's grading scale. Points are
// unique per user; the uniqueness guard lives in the service layer so it can
// fail with a conflict before any write.
type GradeConfig struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string    `gorm:"not null" json:"name"`
	Points        float64   `gorm:"not null" json:"points"`
	Description   *string   `gorm:"column:description" json:"description,omitempty"`
	MinPercentage *float64  `gorm:"column:min_percentage" json:"min_percentage,omitempty"`
	MaxPercentage *float64  `gorm:"column:max_percentage" json:"max_percentage,omitempty"`
	Order         int       `gorm:"column:display_order;not null;default:0" json:"order"`
	IsDefault     bool      `gorm:"column:is_default;not null;default:false" json:"is_default"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (GradeConfig) TableName() string { return "grade_configs" }
