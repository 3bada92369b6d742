package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserEvent is an append-only trail of record mutations (semester.created,
// subject.updated, grade_config.deleted, ...). Payload carries
// action-specific detail such as reassignment counts.
type UserEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Action    string         `gorm:"not null" json:"action"`
	EntityID  uuid.UUID      `gorm:"type:uuid" json:"entity_id"`
	Payload   datatypes.JSON `gorm:"type:jsonb;column:payload" json:"payload,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (UserEvent) TableName() string { return "user_events" }
