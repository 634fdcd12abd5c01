package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/repos"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

// LessonDetail is a lesson with its cards in study order.
type LessonDetail struct {
  Lesson *types.Lesson `json:"lesson"`
  Cards  []*types.Card `json:"cards"`
}

type CourseService interface {
  GetAllCourses(ctx context.Context) ([]*types.Course, error)
  GetCoursesByLanguage(ctx context.Context, language string) ([]*types.Course, error)
  GetCourse(ctx context.Context, courseID uuid.UUID) (*types.Course, error)
  GetCourseLessons(ctx context.Context, courseID uuid.UUID) ([]*types.Lesson, error)
  GetLessonDetail(ctx context.Context, lessonID uuid.UUID) (*LessonDetail, error)
}

type courseService struct {
  db         *gorm.DB
  log        *logger.Logger
  courseRepo repos.CourseRepo
  lessonRepo repos.LessonRepo
  cardRepo   repos.CardRepo
}

func NewCourseService(
  db *gorm.DB,
  baseLog *logger.Logger,
  courseRepo repos.CourseRepo,
  lessonRepo repos.LessonRepo,
  cardRepo repos.CardRepo,
) CourseService {
  serviceLog := baseLog.With("service", "CourseService")
  return &courseService{
    db:         db,
    log:        serviceLog,
    courseRepo: courseRepo,
    lessonRepo: lessonRepo,
    cardRepo:   cardRepo,
  }
}

func (cs *courseService) GetAllCourses(ctx context.Context) ([]*types.Course, error) {
  courses, err := cs.courseRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("load courses: %w", err)
  }
  return courses, nil
}

func (cs *courseService) GetCoursesByLanguage(ctx context.Context, language string) ([]*types.Course, error) {
  courses, err := cs.courseRepo.GetByLanguage(ctx, nil, language)
  if err != nil {
    return nil, fmt.Errorf("load courses for language %q: %w", language, err)
  }
  return courses, nil
}

func (cs *courseService) GetCourse(ctx context.Context, courseID uuid.UUID) (*types.Course, error) {
  courses, err := cs.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("load course: %w", err)
  }
  if len(courses) == 0 || courses[0] == nil {
    return nil, fmt.Errorf("course %s not found", courseID)
  }
  return courses[0], nil
}

func (cs *courseService) GetCourseLessons(ctx context.Context, courseID uuid.UUID) ([]*types.Lesson, error) {
  lessons, err := cs.lessonRepo.GetByCourseID(ctx, nil, courseID)
  if err != nil {
    return nil, fmt.Errorf("load lessons: %w", err)
  }
  return lessons, nil
}

func (cs *courseService) GetLessonDetail(ctx context.Context, lessonID uuid.UUID) (*LessonDetail, error) {
  lessons, err := cs.lessonRepo.GetByIDs(ctx, nil, []uuid.UUID{lessonID})
  if err != nil {
    return nil, fmt.Errorf("load lesson: %w", err)
  }
  if len(lessons) == 0 || lessons[0] == nil {
    return nil, fmt.Errorf("lesson %s not found", lessonID)
  }

  cards, err := cs.cardRepo.GetByLessonID(ctx, nil, lessonID)
  if err != nil {
    return nil, fmt.Errorf("load cards: %w", err)
  }
  return &LessonDetail{Lesson: lessons[0], Cards: cards}, nil
}
