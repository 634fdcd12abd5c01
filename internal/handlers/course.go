package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/services"
)

type CourseHandler struct {
  log           *logger.Logger
  courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
  return &CourseHandler{
    log:           log.With("handler", "CourseHandler"),
    courseService: courseService,
  }
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
  ctx := c.Request.Context()
  if language := c.Query("language"); language != "" {
    courses, err := h.courseService.GetCoursesByLanguage(ctx, language)
    if err != nil {
      h.log.Error("ListCourses failed", "error", err, "language", language)
      RespondError(c, http.StatusInternalServerError, "load_courses_failed", err)
      return
    }
    RespondOK(c, gin.H{"courses": courses})
    return
  }
  courses, err := h.courseService.GetAllCourses(ctx)
  if err != nil {
    h.log.Error("ListCourses failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "load_courses_failed", err)
    return
  }
  RespondOK(c, gin.H{"courses": courses})
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
  courseID, err := uuid.Parse(c.Param("course_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
    return
  }
  course, err := h.courseService.GetCourse(c.Request.Context(), courseID)
  if err != nil {
    h.log.Error("GetCourse failed", "error", err, "course_id", courseID)
    RespondError(c, http.StatusNotFound, "course_not_found", err)
    return
  }
  RespondOK(c, gin.H{"course": course})
}

func (h *CourseHandler) ListCourseLessons(c *gin.Context) {
  courseID, err := uuid.Parse(c.Param("course_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
    return
  }
  lessons, err := h.courseService.GetCourseLessons(c.Request.Context(), courseID)
  if err != nil {
    h.log.Error("ListCourseLessons failed", "error", err, "course_id", courseID)
    RespondError(c, http.StatusInternalServerError, "load_lessons_failed", err)
    return
  }
  RespondOK(c, gin.H{"lessons": lessons})
}

func (h *CourseHandler) GetLesson(c *gin.Context) {
  lessonID, err := uuid.Parse(c.Param("lesson_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_lesson_id", err)
    return
  }
  detail, err := h.courseService.GetLessonDetail(c.Request.Context(), lessonID)
  if err != nil {
    h.log.Error("GetLesson failed", "error", err, "lesson_id", lessonID)
    RespondError(c, http.StatusNotFound, "lesson_not_found", err)
    return
  }
  RespondOK(c, detail)
}
