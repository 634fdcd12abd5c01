package repos

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/synaulearn/synaulearn-backend/internal/repos/testutil"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

func TestMintedBadgeRepo(t *testing.T) {
  db := testutil.DB(t)
  ctx := context.Background()
  repo := NewMintedBadgeRepo(db, testutil.Logger(t))

  u := testutil.SeedUser(t, ctx, db, 4001)
  course := testutil.SeedCourse(t, ctx, db, "DeFi Fundamentals")

  missing, err := repo.GetByUserAndCourseID(ctx, nil, u.ID, course.ID)
  if err != nil {
    t.Fatalf("GetByUserAndCourseID empty: %v", err)
  }
  if missing != nil {
    t.Fatalf("GetByUserAndCourseID empty: want=nil got=%+v", missing)
  }

  badge := &types.MintedBadge{
    ID:            uuid.New(),
    UserID:        u.ID,
    CourseID:      course.ID,
    WalletAddress: "0x1111111111111111111111111111111111111111",
    TokenID:       7,
    TxHash:        "0xdeadbeef",
    MintedAt:      time.Now(),
  }
  if _, err := repo.Create(ctx, nil, []*types.MintedBadge{badge}); err != nil {
    t.Fatalf("Create: %v", err)
  }

  got, err := repo.GetByUserAndCourseID(ctx, nil, u.ID, course.ID)
  if err != nil || got == nil {
    t.Fatalf("GetByUserAndCourseID: err=%v got=%v", err, got)
  }
  if got.TokenID != 7 || got.TxHash != "0xdeadbeef" {
    t.Fatalf("badge row: token_id=%d tx_hash=%s", got.TokenID, got.TxHash)
  }

  if rows, err := repo.GetByUserID(ctx, nil, u.ID); err != nil || len(rows) != 1 {
    t.Fatalf("GetByUserID: err=%v len=%d", err, len(rows))
  }

  if err := repo.UpdateFields(ctx, nil, badge.ID, map[string]interface{}{"token_id": uint64(9)}); err != nil {
    t.Fatalf("UpdateFields: %v", err)
  }
  got, err = repo.GetByUserAndCourseID(ctx, nil, u.ID, course.ID)
  if err != nil || got == nil || got.TokenID != 9 {
    t.Fatalf("after UpdateFields: err=%v got=%+v", err, got)
  }

  if err := repo.FullDeleteByIDs(ctx, nil, []uuid.UUID{badge.ID}); err != nil {
    t.Fatalf("FullDeleteByIDs: %v", err)
  }
  got, err = repo.GetByUserAndCourseID(ctx, nil, u.ID, course.ID)
  if err != nil || got != nil {
    t.Fatalf("after FullDeleteByIDs: err=%v got=%+v", err, got)
  }
}
