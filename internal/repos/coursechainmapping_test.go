package repos

import (
  "context"
  "testing"

  "github.com/synaulearn/synaulearn-backend/internal/repos/testutil"
)

func TestCourseChainMappingRepo(t *testing.T) {
  db := testutil.DB(t)
  ctx := context.Background()
  repo := NewCourseChainMappingRepo(db, testutil.Logger(t))

  max, err := repo.GetMaxChainCourseNumber(ctx, nil)
  if err != nil {
    t.Fatalf("GetMaxChainCourseNumber empty: %v", err)
  }
  if max != 0 {
    t.Fatalf("GetMaxChainCourseNumber empty: want=0 got=%d", max)
  }

  courseA := testutil.SeedCourse(t, ctx, db, "Wallet Security")
  courseB := testutil.SeedCourse(t, ctx, db, "NFTs Explained")
  testutil.SeedChainMapping(t, ctx, db, courseA.ID, 1)
  testutil.SeedChainMapping(t, ctx, db, courseB.ID, 2)

  row, err := repo.GetByCourseID(ctx, nil, courseA.ID)
  if err != nil || row == nil || row.ChainCourseNumber != 1 {
    t.Fatalf("GetByCourseID: err=%v row=%+v", err, row)
  }

  row, err = repo.GetByChainCourseNumber(ctx, nil, 2)
  if err != nil || row == nil || row.CourseID != courseB.ID {
    t.Fatalf("GetByChainCourseNumber: err=%v row=%+v", err, row)
  }

  max, err = repo.GetMaxChainCourseNumber(ctx, nil)
  if err != nil || max != 2 {
    t.Fatalf("GetMaxChainCourseNumber: err=%v max=%d", err, max)
  }
}
