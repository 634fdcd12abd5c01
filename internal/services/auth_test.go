package services

import (
  "context"
  "testing"

  "github.com/synaulearn/synaulearn-backend/internal/repos"
  "github.com/synaulearn/synaulearn-backend/internal/repos/testutil"
)

func newAuthFixture(t *testing.T, secret string) (AuthService, UserService) {
  t.Helper()
  db := testutil.DB(t)
  log := testutil.Logger(t)
  users := NewUserService(
    db,
    log,
    repos.NewUserRepo(db, log),
    repos.NewMintedBadgeRepo(db, log),
    repos.NewCardProgressRepo(db, log),
  )
  return NewAuthService(db, log, users, secret), users
}

func TestSessionTokenRoundTrip(t *testing.T) {
  auth, _ := newAuthFixture(t, "secret-one")
  ctx := context.Background()

  session, err := auth.CreateSession(ctx, 777, "alice", testWallet)
  if err != nil {
    t.Fatalf("CreateSession: %v", err)
  }
  if session.Token == "" || session.User == nil {
    t.Fatalf("session: token=%q user=%v", session.Token, session.User)
  }

  claims, err := auth.ParseToken(session.Token)
  if err != nil {
    t.Fatalf("ParseToken: %v", err)
  }
  if claims.UserID != session.User.ID.String() {
    t.Fatalf("claims user id: want=%s got=%s", session.User.ID, claims.UserID)
  }
  if claims.FarcasterFID != 777 {
    t.Fatalf("claims fid: want=777 got=%d", claims.FarcasterFID)
  }
  if claims.WalletAddress != testWallet {
    t.Fatalf("claims wallet: want=%s got=%s", testWallet, claims.WalletAddress)
  }
}

func TestSessionReusesExistingUser(t *testing.T) {
  auth, _ := newAuthFixture(t, "secret-two")
  ctx := context.Background()

  first, err := auth.CreateSession(ctx, 888, "bob", "")
  if err != nil {
    t.Fatalf("CreateSession first: %v", err)
  }
  second, err := auth.CreateSession(ctx, 888, "bob-renamed", "")
  if err != nil {
    t.Fatalf("CreateSession second: %v", err)
  }
  if first.User.ID != second.User.ID {
    t.Fatalf("user id changed across sessions: %s vs %s", first.User.ID, second.User.ID)
  }
  if second.User.Username != "bob-renamed" {
    t.Fatalf("username update: want=bob-renamed got=%s", second.User.Username)
  }
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
  authA, _ := newAuthFixture(t, "secret-a")
  authB, _ := newAuthFixture(t, "secret-b")
  ctx := context.Background()

  session, err := authA.CreateSession(ctx, 999, "carol", "")
  if err != nil {
    t.Fatalf("CreateSession: %v", err)
  }
  if _, err := authB.ParseToken(session.Token); err == nil {
    t.Fatalf("ParseToken with wrong secret: expected error")
  }
  if _, err := authA.ParseToken("not.a.token"); err == nil {
    t.Fatalf("ParseToken with garbage: expected error")
  }
}
