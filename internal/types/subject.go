package types

import (
	"time"

	"github.com/google/uuid"
)

// Subject belongs to exactly one semester. Grade holds the label of the
// owning user's grade config; GradePoints is a snapshot of that config's
// points taken when the grade was assigned, not a live reference. The
// snapshot is re-synced only by grade-deletion reassignment.
type Subject struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SemesterID  uuid.UUID `gorm:"type:uuid;not null;index" json:"semester_id"`
	Name        string    `gorm:"not null" json:"name"`
	Grade       string    `gorm:"not null;index" json:"grade"`
	GradePoints float64   `gorm:"column:grade_points;not null;default:0" json:"grade_points"`
	Credits     float64   `gorm:"not null;default:0" json:"credits"`
	Order       int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Subject) TableName() string { return "subjects" }
