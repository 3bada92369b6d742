package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradepoint/gradepoint-backend/internal/logger"
	"github.com/gradepoint/gradepoint-backend/internal/requestdata"
	"github.com/gradepoint/gradepoint-backend/internal/services"
)

type SubjectHandler struct {
	log            *logger.Logger
	subjectService services.SubjectService
}

func NewSubjectHandler(log *logger.Logger, subjectService services.SubjectService) *SubjectHandler {
	return &SubjectHandler{
		log:            log.With("handler", "SubjectHandler"),
		subjectService: subjectService,
	}
}

func (h *SubjectHandler) ListBySemester(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	semesterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	subjects, err := h.subjectService.ListBySemester(c.Request.Context(), userID, semesterID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"subjects": subjects})
}

func (h *SubjectHandler) Create(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	semesterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var input services.CreateSubjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	subject, err := h.subjectService.Create(c.Request.Context(), userID, semesterID, input)
	if err != nil {
		h.log.Error("Create failed", "user_id", userID.String(), "error", err)
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, gin.H{"subject": subject})
}

func (h *SubjectHandler) BulkCreate(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	semesterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var body struct {
		Subjects []services.CreateSubjectInput `json:"subjects"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	subjects, err := h.subjectService.BulkCreate(c.Request.Context(), userID, semesterID, body.Subjects)
	if err != nil {
		h.log.Error("BulkCreate failed", "user_id", userID.String(), "error", err)
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, gin.H{"subjects": subjects})
}

func (h *SubjectHandler) Update(c *gin.Context) {
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
	var input services.UpdateSubjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	subject, err := h.subjectService.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"subject": subject})
}

func (h *SubjectHandler) Delete(c *gin.Context) {
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
	if err := h.subjectService.Delete(c.Request.Context(), userID, id); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
