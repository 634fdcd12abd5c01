package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/requestdata"
  "github.com/synaulearn/synaulearn-backend/internal/services"
)

type ProgressHandler struct {
  log             *logger.Logger
  progressService services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressService services.ProgressService) *ProgressHandler {
  return &ProgressHandler{
    log:             log.With("handler", "ProgressHandler"),
    progressService: progressService,
  }
}

type saveCardProgressRequest struct {
  CardID      string `json:"card_id" binding:"required"`
  QuizCorrect bool   `json:"quiz_correct"`
}

func (h *ProgressHandler) SaveCardProgress(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  var req saveCardProgressRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  cardID, err := uuid.Parse(req.CardID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_card_id", err)
    return
  }
  if err := h.progressService.SaveCardProgress(c.Request.Context(), rd.UserID, cardID, req.QuizCorrect); err != nil {
    h.log.Error("SaveCardProgress failed", "error", err, "user_id", rd.UserID, "card_id", cardID)
    RespondError(c, http.StatusInternalServerError, "save_progress_failed", err)
    return
  }
  RespondOK(c, gin.H{"saved": true})
}

func (h *ProgressHandler) GetCourseProgress(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  courseID, err := uuid.Parse(c.Param("course_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
    return
  }
  summary, err := h.progressService.GetCourseProgressSummary(c.Request.Context(), rd.UserID, courseID)
  if err != nil {
    h.log.Error("GetCourseProgress failed", "error", err, "user_id", rd.UserID, "course_id", courseID)
    RespondError(c, http.StatusInternalServerError, "load_progress_failed", err)
    return
  }
  RespondOK(c, summary)
}
