package services

import (
  "context"
  "testing"

  "gorm.io/gorm"

  "github.com/synaulearn/synaulearn-backend/internal/repos"
  "github.com/synaulearn/synaulearn-backend/internal/repos/testutil"
)

func newUserFixture(t *testing.T) (UserService, *gorm.DB, repos.UserRepo) {
  t.Helper()
  db := testutil.DB(t)
  log := testutil.Logger(t)
  userRepo := repos.NewUserRepo(db, log)
  svc := NewUserService(
    db,
    log,
    userRepo,
    repos.NewMintedBadgeRepo(db, log),
    repos.NewCardProgressRepo(db, log),
  )
  return svc, db, userRepo
}

func TestConnectWallet(t *testing.T) {
  svc, db, _ := newUserFixture(t)
  ctx := context.Background()
  u := testutil.SeedUser(t, ctx, db, 7001)

  updated, err := svc.ConnectWallet(ctx, u.ID, "  0x000000000000000000000000000000000000dEaD  ")
  if err != nil {
    t.Fatalf("ConnectWallet: %v", err)
  }
  if updated.WalletAddress != "0x000000000000000000000000000000000000dEaD" {
    t.Fatalf("wallet address: got=%q", updated.WalletAddress)
  }

  if _, err := svc.ConnectWallet(ctx, u.ID, "   "); err == nil {
    t.Fatalf("ConnectWallet blank: expected error")
  }
}

func TestLeaderboardRanks(t *testing.T) {
  svc, db, userRepo := newUserFixture(t)
  ctx := context.Background()

  a := testutil.SeedUser(t, ctx, db, 7002)
  b := testutil.SeedUser(t, ctx, db, 7003)
  if err := userRepo.IncrementTotalXP(ctx, nil, a.ID, 30); err != nil {
    t.Fatalf("IncrementTotalXP: %v", err)
  }
  if err := userRepo.IncrementTotalXP(ctx, nil, b.ID, 90); err != nil {
    t.Fatalf("IncrementTotalXP: %v", err)
  }

  entries, err := svc.GetLeaderboard(ctx, 10)
  if err != nil {
    t.Fatalf("GetLeaderboard: %v", err)
  }
  if len(entries) != 2 {
    t.Fatalf("entries: want=2 got=%d", len(entries))
  }
  if entries[0].UserID != b.ID || entries[0].Rank != 1 {
    t.Fatalf("first entry: %+v", entries[0])
  }
  if entries[1].UserID != a.ID || entries[1].Rank != 2 {
    t.Fatalf("second entry: %+v", entries[1])
  }
}

func TestGetProfileCounts(t *testing.T) {
  svc, db, _ := newUserFixture(t)
  ctx := context.Background()

  u := testutil.SeedUser(t, ctx, db, 7004)
  course := testutil.SeedCourse(t, ctx, db, "Profile Course")
  lesson := testutil.SeedLesson(t, ctx, db, course.ID, 1)
  card := testutil.SeedCard(t, ctx, db, lesson.ID, 1)

  log := testutil.Logger(t)
  progress := NewProgressService(
    db,
    log,
    repos.NewLessonRepo(db, log),
    repos.NewCardRepo(db, log),
    repos.NewCardProgressRepo(db, log),
    repos.NewUserRepo(db, log),
  )
  if err := progress.SaveCardProgress(ctx, u.ID, card.ID, true); err != nil {
    t.Fatalf("SaveCardProgress: %v", err)
  }

  profile, err := svc.GetProfile(ctx, u.ID)
  if err != nil {
    t.Fatalf("GetProfile: %v", err)
  }
  if profile.CardsStudied != 1 {
    t.Fatalf("cards studied: want=1 got=%d", profile.CardsStudied)
  }
  if profile.BadgeCount != 0 {
    t.Fatalf("badge count: want=0 got=%d", profile.BadgeCount)
  }
  if profile.User.TotalXP != XPBaseAward+XPCorrectBonus {
    t.Fatalf("total xp: want=%d got=%d", XPBaseAward+XPCorrectBonus, profile.User.TotalXP)
  }
}
