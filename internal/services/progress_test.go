package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/synaulearn/synaulearn-backend/internal/repos"
  "github.com/synaulearn/synaulearn-backend/internal/repos/testutil"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

func newProgressFixture(t *testing.T) (ProgressService, *gorm.DB, repos.UserRepo) {
  t.Helper()
  db := testutil.DB(t)
  log := testutil.Logger(t)
  userRepo := repos.NewUserRepo(db, log)
  svc := NewProgressService(
    db,
    log,
    repos.NewLessonRepo(db, log),
    repos.NewCardRepo(db, log),
    repos.NewCardProgressRepo(db, log),
    userRepo,
  )
  return svc, db, userRepo
}

func TestCourseProgressZeroCards(t *testing.T) {
  svc, db, _ := newProgressFixture(t)
  ctx := context.Background()

  u := testutil.SeedUser(t, ctx, db, 5001)
  course := testutil.SeedCourse(t, ctx, db, "Empty Course")
  testutil.SeedLesson(t, ctx, db, course.ID, 1)

  pct, err := svc.GetCourseProgressPercentage(ctx, u.ID, course.ID)
  if err != nil {
    t.Fatalf("GetCourseProgressPercentage: %v", err)
  }
  if pct != 0 {
    t.Fatalf("percentage for course with no cards: want=0 got=%d", pct)
  }
}

func TestCourseProgressPartial(t *testing.T) {
  svc, db, _ := newProgressFixture(t)
  ctx := context.Background()

  u := testutil.SeedUser(t, ctx, db, 5002)
  course := testutil.SeedCourse(t, ctx, db, "Partial Course")
  lesson := testutil.SeedLesson(t, ctx, db, course.ID, 1)
  cards := []*types.Card{
    testutil.SeedCard(t, ctx, db, lesson.ID, 1),
    testutil.SeedCard(t, ctx, db, lesson.ID, 2),
    testutil.SeedCard(t, ctx, db, lesson.ID, 3),
  }

  if err := svc.SaveCardProgress(ctx, u.ID, cards[0].ID, true); err != nil {
    t.Fatalf("SaveCardProgress: %v", err)
  }

  summary, err := svc.GetCourseProgressSummary(ctx, u.ID, course.ID)
  if err != nil {
    t.Fatalf("GetCourseProgressSummary: %v", err)
  }
  if summary.TotalCards != 3 || summary.CompletedCards != 1 {
    t.Fatalf("summary cards: total=%d completed=%d", summary.TotalCards, summary.CompletedCards)
  }
  if summary.Percentage != 33 {
    t.Fatalf("percentage: want=33 got=%d", summary.Percentage)
  }
  if summary.XPEarned != XPBaseAward+XPCorrectBonus {
    t.Fatalf("xp earned: want=%d got=%d", XPBaseAward+XPCorrectBonus, summary.XPEarned)
  }
}

func TestCourseProgressComplete(t *testing.T) {
  svc, db, _ := newProgressFixture(t)
  ctx := context.Background()

  u := testutil.SeedUser(t, ctx, db, 5003)
  course := testutil.SeedCourse(t, ctx, db, "Finished Course")
  lesson := testutil.SeedLesson(t, ctx, db, course.ID, 1)
  for i := 1; i <= 4; i++ {
    card := testutil.SeedCard(t, ctx, db, lesson.ID, i)
    if err := svc.SaveCardProgress(ctx, u.ID, card.ID, i%2 == 0); err != nil {
      t.Fatalf("SaveCardProgress card %d: %v", i, err)
    }
  }

  pct, err := svc.GetCourseProgressPercentage(ctx, u.ID, course.ID)
  if err != nil {
    t.Fatalf("GetCourseProgressPercentage: %v", err)
  }
  if pct != 100 {
    t.Fatalf("percentage: want=100 got=%d", pct)
  }
}

func TestSaveCardProgressXPIdempotent(t *testing.T) {
  svc, db, userRepo := newProgressFixture(t)
  ctx := context.Background()

  u := testutil.SeedUser(t, ctx, db, 5004)
  course := testutil.SeedCourse(t, ctx, db, "XP Course")
  lesson := testutil.SeedLesson(t, ctx, db, course.ID, 1)
  card := testutil.SeedCard(t, ctx, db, lesson.ID, 1)

  totalXP := func() int {
    t.Helper()
    rows, err := userRepo.GetByIDs(ctx, nil, []uuid.UUID{u.ID})
    if err != nil || len(rows) != 1 {
      t.Fatalf("reload user: err=%v len=%d", err, len(rows))
    }
    return rows[0].TotalXP
  }

  // Incorrect first attempt earns the base award only.
  if err := svc.SaveCardProgress(ctx, u.ID, card.ID, false); err != nil {
    t.Fatalf("SaveCardProgress incorrect: %v", err)
  }
  if got := totalXP(); got != XPBaseAward {
    t.Fatalf("total xp after incorrect: want=%d got=%d", XPBaseAward, got)
  }

  // Redoing the card correctly moves the total to the full award, not
  // the sum of both attempts.
  if err := svc.SaveCardProgress(ctx, u.ID, card.ID, true); err != nil {
    t.Fatalf("SaveCardProgress correct: %v", err)
  }
  if got := totalXP(); got != XPBaseAward+XPCorrectBonus {
    t.Fatalf("total xp after correct redo: want=%d got=%d", XPBaseAward+XPCorrectBonus, got)
  }

  // Repeating the same result is a no-op for the total.
  if err := svc.SaveCardProgress(ctx, u.ID, card.ID, true); err != nil {
    t.Fatalf("SaveCardProgress repeat: %v", err)
  }
  if got := totalXP(); got != XPBaseAward+XPCorrectBonus {
    t.Fatalf("total xp after repeat: want=%d got=%d", XPBaseAward+XPCorrectBonus, got)
  }
}
