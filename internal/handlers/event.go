package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/requestdata"
	"github.com/gradepoint/gradepoint-backend/internal/services"
)

type EventHandler struct {
	log          *logger.Logger
	eventService services.EventService
}

func NewEventHandler(log *logger.Logger, eventService services.EventService) *EventHandler {
	return &EventHandler{
		log:          log.With("handler", "EventHandler"),
		eventService: eventService,
	}
}

func (h *EventHandler) Recent(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	events, err := h.eventService.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}
