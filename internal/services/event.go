package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/repos"
	"github.com/gradepoint/gradepoint-backend/internal/types"
)

// EventService appends to the per-user audit trail. Record runs inside the
// caller's transaction so the trail never disagrees with the mutation it
// describes.
type EventService interface {
	Record(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, entityID uuid.UUID, payload map[string]interface{}) error
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*types.UserEvent, error)
}

type eventService struct {
	events repos.UserEventRepo
	log    *logger.Logger
}

func NewEventService(events repos.UserEventRepo, baseLog *logger.Logger) EventService {
	svcLog := baseLog.With("service", "EventService")
	return &eventService{events: events, log: svcLog}
}

func (s *eventService) Record(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, entityID uuid.UUID, payload map[string]interface{}) error {
	row := &types.UserEvent{
		UserID:   userID,
		Action:   action,
		EntityID: entityID,
	}
	if len(payload) > 0 {
		raw, err := json.Marshal(payload)
		if err != nil {
			s.log.Warn("Failed to encode event payload", "action", action, "error", err)
		} else {
			row.Payload = raw
		}
	}

	if _, err := s.events.Create(ctx, tx, []*types.UserEvent{row}); err != nil {
		s.log.Error("Failed to record event", "action", action, "error", err)
		return err
	}
	return nil
}

func (s *eventService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*types.UserEvent, error) {
	results, err := s.events.GetRecentByUserID(ctx, nil, userID, limit)
	if err != nil {
		s.log.Error("Failed to list events", "user_id", userID.String(), "error", err)
		return nil, err
	}
	return results, nil
}
