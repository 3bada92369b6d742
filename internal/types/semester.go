package types

import (
	"time"

	"github.com/google/uuid"
)

// Semester groups the subjects of one academic term. GPA and TotalCredits
// are caches derived from the child subjects; they are recomputed on every
// subject mutation and must never be written from outside the services
// layer. Version is the optimistic-concurrency token checked and incremented
// on every cache write.
type Semester struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string     `gorm:"not null" json:"name"`
	Year         int        `gorm:"not null;index" json:"year"`
	Term         *string    `gorm:"column:term" json:"term,omitempty"`
	GPA          float64    `gorm:"column:gpa;not null;default:0" json:"gpa"`
	TotalCredits float64    `gorm:"column:total_credits;not null;default:0" json:"total_credits"`
	Order        int        `gorm:"column:display_order;not null;default:0" json:"order"`
	Version      int        `gorm:"column:version;not null;default:0" json:"-"`
	Subjects     []*Subject `gorm:"constraint:OnDelete:CASCADE;foreignKey:SemesterID;references:ID" json:"subjects,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (Semester) TableName() string { return "semesters" }
