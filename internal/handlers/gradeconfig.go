package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/requestdata"
	"github.com/gradepoint/gradepoint-backend/internal/services"
)

type GradeConfigHandler struct {
	log                *logger.Logger
	gradeConfigService services.GradeConfigService
}

func NewGradeConfigHandler(log *logger.Logger, gradeConfigService services.GradeConfigService) *GradeConfigHandler {
	return &GradeConfigHandler{
		log:                log.With("handler", "GradeConfigHandler"),
		gradeConfigService: gradeConfigService,
	}
}

func (h *GradeConfigHandler) List(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	configs, err := h.gradeConfigService.List(c.Request.Context(), userID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"grades": configs})
}

func (h *GradeConfigHandler) Create(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var input services.CreateGradeConfigInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	config, err := h.gradeConfigService.Create(c.Request.Context(), userID, input)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, gin.H{"grade": config})
}

func (h *GradeConfigHandler) Update(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var input services.UpdateGradeConfigInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	config, err := h.gradeConfigService.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"grade": config})
}

func (h *GradeConfigHandler) Delete(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	result, err := h.gradeConfigService.Delete(c.Request.Context(), userID, id)
	if err != nil {
		h.log.Error("Delete failed", "user_id", userID.String(), "grade_config_id", id.String(), "error", err)
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true, "result": result})
}

func (h *GradeConfigHandler) Reset(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	configs, err := h.gradeConfigService.ResetToDefaults(c.Request.Context(), userID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"grades": configs})
}
