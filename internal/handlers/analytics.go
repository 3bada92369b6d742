package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/requestdata"
	"github.com/gradepoint/gradepoint-backend/internal/services"
)

type AnalyticsHandler struct {
	log              *logger.Logger
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(log *logger.Logger, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		log:              log.With("handler", "AnalyticsHandler"),
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) Get(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	data, err := h.analyticsService.GetAnalytics(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Get failed", "user_id", userID.String(), "error", err)
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"analytics": data})
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	overview, err := h.analyticsService.GetOverview(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Overview failed", "user_id", userID.String(), "error", err)
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, overview)
}
