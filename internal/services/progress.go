package services

import (
  "context"
  "fmt"
  "math"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/repos"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

// XP policy: finishing a card's quiz always credits the base award, a
// correct answer adds the bonus on top.
const (
  XPBaseAward    = 5
  XPCorrectBonus = 10
)

type CourseProgressSummary struct {
  CourseID       uuid.UUID `json:"course_id"`
  TotalCards     int       `json:"total_cards"`
  CompletedCards int       `json:"completed_cards"`
  Percentage     int       `json:"percentage"`
  XPEarned       int       `json:"xp_earned"`
}

type ProgressService interface {
  GetCourseProgressPercentage(ctx context.Context, userID, courseID uuid.UUID) (int, error)
  GetCourseProgressSummary(ctx context.Context, userID, courseID uuid.UUID) (*CourseProgressSummary, error)
  SaveCardProgress(ctx context.Context, userID, cardID uuid.UUID, quizCorrect bool) error
}

type progressService struct {
  db               *gorm.DB
  log              *logger.Logger
  lessonRepo       repos.LessonRepo
  cardRepo         repos.CardRepo
  cardProgressRepo repos.CardProgressRepo
  userRepo         repos.UserRepo
}

func NewProgressService(
  db *gorm.DB,
  baseLog *logger.Logger,
  lessonRepo repos.LessonRepo,
  cardRepo repos.CardRepo,
  cardProgressRepo repos.CardProgressRepo,
  userRepo repos.UserRepo,
) ProgressService {
  serviceLog := baseLog.With("service", "ProgressService")
  return &progressService{
    db:               db,
    log:              serviceLog,
    lessonRepo:       lessonRepo,
    cardRepo:         cardRepo,
    cardProgressRepo: cardProgressRepo,
    userRepo:         userRepo,
  }
}

func (ps *progressService) GetCourseProgressPercentage(ctx context.Context, userID, courseID uuid.UUID) (int, error) {
  summary, err := ps.GetCourseProgressSummary(ctx, userID, courseID)
  if err != nil {
    return 0, err
  }
  return summary.Percentage, nil
}

func (ps *progressService) GetCourseProgressSummary(ctx context.Context, userID, courseID uuid.UUID) (*CourseProgressSummary, error) {
  lessons, err := ps.lessonRepo.GetByCourseID(ctx, nil, courseID)
  if err != nil {
    return nil, fmt.Errorf("load lessons: %w", err)
  }

  lessonIDs := make([]uuid.UUID, 0, len(lessons))
  for _, lesson := range lessons {
    if lesson != nil {
      lessonIDs = append(lessonIDs, lesson.ID)
    }
  }

  cards, err := ps.cardRepo.GetByLessonIDs(ctx, nil, lessonIDs)
  if err != nil {
    return nil, fmt.Errorf("load cards: %w", err)
  }

  summary := &CourseProgressSummary{CourseID: courseID, TotalCards: len(cards)}
  // A course with no cards is 0% complete, never mint-eligible.
  if len(cards) == 0 {
    return summary, nil
  }

  cardIDs := make([]uuid.UUID, 0, len(cards))
  for _, card := range cards {
    if card != nil {
      cardIDs = append(cardIDs, card.ID)
    }
  }

  progressRows, err := ps.cardProgressRepo.GetByUserAndCardIDs(ctx, nil, userID, cardIDs)
  if err != nil {
    return nil, fmt.Errorf("load card progress: %w", err)
  }
  for _, row := range progressRows {
    if row == nil || !row.QuizCompleted {
      continue
    }
    summary.CompletedCards++
    summary.XPEarned += row.XPEarned
  }

  summary.Percentage = int(math.Round(100 * float64(summary.CompletedCards) / float64(summary.TotalCards)))
  return summary, nil
}

func (ps *progressService) SaveCardProgress(ctx context.Context, userID, cardID uuid.UUID, quizCorrect bool) error {
  if userID == uuid.Nil || cardID == uuid.Nil {
    return fmt.Errorf("missing user or card id")
  }

  award := XPBaseAward
  if quizCorrect {
    award += XPCorrectBonus
  }

  return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, err := ps.cardProgressRepo.GetByUserAndCardIDs(ctx, tx, userID, []uuid.UUID{cardID})
    if err != nil {
      return fmt.Errorf("load existing card progress: %w", err)
    }
    previousAward := 0
    if len(existing) > 0 && existing[0] != nil {
      previousAward = existing[0].XPEarned
    }

    now := time.Now()
    row := &types.UserCardProgress{
      ID:              uuid.New(),
      UserID:          userID,
      CardID:          cardID,
      FlashcardViewed: true,
      QuizCompleted:   true,
      QuizCorrect:     quizCorrect,
      XPEarned:        award,
      CompletedAt:     &now,
    }
    if err := ps.cardProgressRepo.Upsert(ctx, tx, row); err != nil {
      return fmt.Errorf("upsert card progress: %w", err)
    }

    // The user's running total only moves by the difference between the
    // previous award and the new one, so re-answering a card never
    // double-counts.
    if err := ps.userRepo.IncrementTotalXP(ctx, tx, userID, award-previousAward); err != nil {
      return fmt.Errorf("increment total xp: %w", err)
    }
    return nil
  })
}
