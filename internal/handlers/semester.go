package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/requestdata"
	"github.com/gradepoint/gradepoint-backend/internal/services"
)

type SemesterHandler struct {
	log             *logger.Logger
	semesterService services.SemesterService
}

func NewSemesterHandler(log *logger.Logger, semesterService services.SemesterService) *SemesterHandler {
	return &SemesterHandler{
		log:             log.With("handler", "SemesterHandler"),
		semesterService: semesterService,
	}
}

func (h *SemesterHandler) List(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	semesters, err := h.semesterService.List(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("List failed", "user_id", userID.String(), "error", err)
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"semesters": semesters})
}

func (h *SemesterHandler) Get(c *gin.Context) {
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
	semester, err := h.semesterService.Get(c.Request.Context(), userID, id)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"semester": semester})
}

func (h *SemesterHandler) Create(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var input services.CreateSemesterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	semester, err := h.semesterService.Create(c.Request.Context(), userID, input)
	if err != nil {
		h.log.Error("Create failed", "user_id", userID.String(), "error", err)
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, gin.H{"semester": semester})
}

func (h *SemesterHandler) Update(c *gin.Context) {
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
	var input services.UpdateSemesterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	semester, err := h.semesterService.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"semester": semester})
}

func (h *SemesterHandler) Delete(c *gin.Context) {
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
	if err := h.semesterService.Delete(c.Request.Context(), userID, id); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
