package repos

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/synaulearn/synaulearn-backend/internal/repos/testutil"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

func TestCardProgressRepoUpsert(t *testing.T) {
  db := testutil.DB(t)
  ctx := context.Background()
  repo := NewCardProgressRepo(db, testutil.Logger(t))

  u := testutil.SeedUser(t, ctx, db, 3001)
  course := testutil.SeedCourse(t, ctx, db, "Blockchain Basics")
  lesson := testutil.SeedLesson(t, ctx, db, course.ID, 1)
  card := testutil.SeedCard(t, ctx, db, lesson.ID, 1)

  now := time.Now()
  first := &types.UserCardProgress{
    ID:              uuid.New(),
    UserID:          u.ID,
    CardID:          card.ID,
    FlashcardViewed: true,
    QuizCompleted:   true,
    QuizCorrect:     false,
    XPEarned:        5,
    CompletedAt:     &now,
  }
  if err := repo.Upsert(ctx, nil, first); err != nil {
    t.Fatalf("Upsert: %v", err)
  }

  // Second upsert for the same (user, card) must update in place, not
  // add a row.
  second := &types.UserCardProgress{
    ID:              uuid.New(),
    UserID:          u.ID,
    CardID:          card.ID,
    FlashcardViewed: true,
    QuizCompleted:   true,
    QuizCorrect:     true,
    XPEarned:        15,
    CompletedAt:     &now,
  }
  if err := repo.Upsert(ctx, nil, second); err != nil {
    t.Fatalf("Upsert again: %v", err)
  }

  rows, err := repo.GetByUserAndCardIDs(ctx, nil, u.ID, []uuid.UUID{card.ID})
  if err != nil {
    t.Fatalf("GetByUserAndCardIDs: %v", err)
  }
  if len(rows) != 1 {
    t.Fatalf("rows after double upsert: want=1 got=%d", len(rows))
  }
  if !rows[0].QuizCorrect || rows[0].XPEarned != 15 {
    t.Fatalf("upserted row: quiz_correct=%v xp=%d", rows[0].QuizCorrect, rows[0].XPEarned)
  }

  count, err := repo.CountCompletedByUserAndCardIDs(ctx, nil, u.ID, []uuid.UUID{card.ID})
  if err != nil || count != 1 {
    t.Fatalf("CountCompletedByUserAndCardIDs: err=%v count=%d", err, count)
  }
}
