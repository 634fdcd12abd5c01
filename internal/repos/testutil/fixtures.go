package testutil

import (
  "context"
  "fmt"
  "testing"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/synaulearn/synaulearn-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, db *gorm.DB, fid int64) *types.User {
  tb.Helper()
  u := &types.User{
    ID:           uuid.New(),
    FarcasterFID: fid,
    Username:     fmt.Sprintf("user%d", fid),
  }
  if err := db.WithContext(ctx).Create(u).Error; err != nil {
    tb.Fatalf("seed user: %v", err)
  }
  return u
}

func SeedCourse(tb testing.TB, ctx context.Context, db *gorm.DB, title string) *types.Course {
  tb.Helper()
  c := &types.Course{
    ID:           uuid.New(),
    Title:        title,
    Emoji:        "🧠",
    Language:     "en",
    Difficulty:   "beginner",
    TotalLessons: 1,
  }
  if err := db.WithContext(ctx).Create(c).Error; err != nil {
    tb.Fatalf("seed course: %v", err)
  }
  return c
}

func SeedLesson(tb testing.TB, ctx context.Context, db *gorm.DB, courseID uuid.UUID, number int) *types.Lesson {
  tb.Helper()
  l := &types.Lesson{
    ID:           uuid.New(),
    CourseID:     courseID,
    LessonNumber: number,
    Title:        fmt.Sprintf("lesson %d", number),
  }
  if err := db.WithContext(ctx).Create(l).Error; err != nil {
    tb.Fatalf("seed lesson: %v", err)
  }
  return l
}

func SeedCard(tb testing.TB, ctx context.Context, db *gorm.DB, lessonID uuid.UUID, number int) *types.Card {
  tb.Helper()
  c := &types.Card{
    ID:                uuid.New(),
    LessonID:          lessonID,
    CardNumber:        number,
    FlashcardQuestion: "what is a block?",
    FlashcardAnswer:   "a batch of transactions",
    QuizQuestion:      "what links blocks together?",
    QuizOptionA:       "hashes",
    QuizOptionB:       "timestamps",
    QuizOptionC:       "miners",
    QuizOptionD:       "wallets",
    CorrectAnswer:     "A",
  }
  if err := db.WithContext(ctx).Create(c).Error; err != nil {
    tb.Fatalf("seed card: %v", err)
  }
  return c
}

func SeedChainMapping(tb testing.TB, ctx context.Context, db *gorm.DB, courseID uuid.UUID, number uint64) *types.CourseChainMapping {
  tb.Helper()
  m := &types.CourseChainMapping{
    ID:                uuid.New(),
    CourseID:          courseID,
    ChainCourseNumber: number,
  }
  if err := db.WithContext(ctx).Create(m).Error; err != nil {
    tb.Fatalf("seed chain mapping: %v", err)
  }
  return m
}
