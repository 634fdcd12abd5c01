package repos

import (
  "context"
  "testing"

  "github.com/google/uuid"

  "github.com/synaulearn/synaulearn-backend/internal/repos/testutil"
)

func TestUserRepo(t *testing.T) {
  db := testutil.DB(t)
  ctx := context.Background()
  repo := NewUserRepo(db, testutil.Logger(t))

  u := testutil.SeedUser(t, ctx, db, 1001)

  if rows, err := repo.GetByIDs(ctx, nil, []uuid.UUID{u.ID}); err != nil || len(rows) != 1 {
    t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
  }
  if rows, err := repo.GetByFarcasterFIDs(ctx, nil, []int64{1001}); err != nil || len(rows) != 1 {
    t.Fatalf("GetByFarcasterFIDs: err=%v len=%d", err, len(rows))
  }

  if err := repo.UpdateFields(ctx, nil, u.ID, map[string]interface{}{"wallet_address": "0xabc"}); err != nil {
    t.Fatalf("UpdateFields: %v", err)
  }
  rows, err := repo.GetByIDs(ctx, nil, []uuid.UUID{u.ID})
  if err != nil || len(rows) != 1 {
    t.Fatalf("reload after UpdateFields: err=%v len=%d", err, len(rows))
  }
  if rows[0].WalletAddress != "0xabc" {
    t.Fatalf("wallet_address: want=0xabc got=%s", rows[0].WalletAddress)
  }

  if err := repo.IncrementTotalXP(ctx, nil, u.ID, 15); err != nil {
    t.Fatalf("IncrementTotalXP: %v", err)
  }
  if err := repo.IncrementTotalXP(ctx, nil, u.ID, -5); err != nil {
    t.Fatalf("IncrementTotalXP negative: %v", err)
  }
  rows, err = repo.GetByIDs(ctx, nil, []uuid.UUID{u.ID})
  if err != nil || len(rows) != 1 {
    t.Fatalf("reload after IncrementTotalXP: err=%v len=%d", err, len(rows))
  }
  if rows[0].TotalXP != 10 {
    t.Fatalf("total_xp: want=10 got=%d", rows[0].TotalXP)
  }
}

func TestUserRepoLeaderboardOrder(t *testing.T) {
  db := testutil.DB(t)
  ctx := context.Background()
  repo := NewUserRepo(db, testutil.Logger(t))

  low := testutil.SeedUser(t, ctx, db, 2001)
  high := testutil.SeedUser(t, ctx, db, 2002)
  mid := testutil.SeedUser(t, ctx, db, 2003)

  if err := repo.IncrementTotalXP(ctx, nil, low.ID, 5); err != nil {
    t.Fatalf("IncrementTotalXP: %v", err)
  }
  if err := repo.IncrementTotalXP(ctx, nil, high.ID, 50); err != nil {
    t.Fatalf("IncrementTotalXP: %v", err)
  }
  if err := repo.IncrementTotalXP(ctx, nil, mid.ID, 20); err != nil {
    t.Fatalf("IncrementTotalXP: %v", err)
  }

  rows, err := repo.ListByTotalXPDesc(ctx, nil, 2)
  if err != nil {
    t.Fatalf("ListByTotalXPDesc: %v", err)
  }
  if len(rows) != 2 {
    t.Fatalf("ListByTotalXPDesc len: want=2 got=%d", len(rows))
  }
  if rows[0].ID != high.ID || rows[1].ID != mid.ID {
    t.Fatalf("ListByTotalXPDesc order: got=[%s %s]", rows[0].Username, rows[1].Username)
  }
}
