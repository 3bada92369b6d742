package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/requestdata"
	"github.com/gradepoint/gradepoint-backend/internal/services"
)

type SettingsHandler struct {
	log             *logger.Logger
	settingsService services.SettingsService
}

func NewSettingsHandler(log *logger.Logger, settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		log:             log.With("handler", "SettingsHandler"),
		settingsService: settingsService,
	}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	settings, err := h.settingsService.Get(c.Request.Context(), userID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"settings": settings})
}

func (h *SettingsHandler) Update(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var input services.UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	settings, err := h.settingsService.Update(c.Request.Context(), userID, input)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"settings": settings})
}
