package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/repos"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

type UserProfile struct {
  User         *types.User          `json:"user"`
  BadgeCount   int                  `json:"badge_count"`
  Badges       []*types.MintedBadge `json:"badges"`
  CardsStudied int                  `json:"cards_studied"`
}

type LeaderboardEntry struct {
  Rank     int       `json:"rank"`
  UserID   uuid.UUID `json:"user_id"`
  Username string    `json:"username"`
  TotalXP  int       `json:"total_xp"`
}

type UserService interface {
  UpsertFromFarcaster(ctx context.Context, fid int64, username string) (*types.User, error)
  GetProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error)
  ConnectWallet(ctx context.Context, userID uuid.UUID, walletAddress string) (*types.User, error)
  GetLeaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
}

type userService struct {
  db               *gorm.DB
  log              *logger.Logger
  userRepo         repos.UserRepo
  mintedBadgeRepo  repos.MintedBadgeRepo
  cardProgressRepo repos.CardProgressRepo
}

func NewUserService(
  db *gorm.DB,
  baseLog *logger.Logger,
  userRepo repos.UserRepo,
  mintedBadgeRepo repos.MintedBadgeRepo,
  cardProgressRepo repos.CardProgressRepo,
) UserService {
  serviceLog := baseLog.With("service", "UserService")
  return &userService{
    db:               db,
    log:              serviceLog,
    userRepo:         userRepo,
    mintedBadgeRepo:  mintedBadgeRepo,
    cardProgressRepo: cardProgressRepo,
  }
}

func (us *userService) UpsertFromFarcaster(ctx context.Context, fid int64, username string) (*types.User, error) {
  if fid <= 0 {
    return nil, fmt.Errorf("invalid farcaster fid %d", fid)
  }

  var out *types.User
  err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, err := us.userRepo.GetByFarcasterFIDs(ctx, tx, []int64{fid})
    if err != nil {
      return err
    }
    if len(existing) > 0 && existing[0] != nil {
      out = existing[0]
      if username != "" && existing[0].Username != username {
        if err := us.userRepo.UpdateFields(ctx, tx, existing[0].ID, map[string]interface{}{"username": username}); err != nil {
          return err
        }
        out.Username = username
      }
      return nil
    }

    now := time.Now()
    user := &types.User{
      ID:           uuid.New(),
      FarcasterFID: fid,
      Username:     username,
      CreatedAt:    now,
      UpdatedAt:    now,
    }
    if _, err := us.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
      return err
    }
    out = user
    return nil
  })
  if err != nil {
    return nil, fmt.Errorf("upsert farcaster user: %w", err)
  }
  return out, nil
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
  users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("load user: %w", err)
  }
  if len(users) == 0 || users[0] == nil {
    return nil, fmt.Errorf("user %s not found", userID)
  }

  badges, err := us.mintedBadgeRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("load badges: %w", err)
  }

  progressRows, err := us.cardProgressRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("load card progress: %w", err)
  }
  studied := 0
  for _, row := range progressRows {
    if row != nil && row.QuizCompleted {
      studied++
    }
  }

  return &UserProfile{
    User:         users[0],
    BadgeCount:   len(badges),
    Badges:       badges,
    CardsStudied: studied,
  }, nil
}

func (us *userService) ConnectWallet(ctx context.Context, userID uuid.UUID, walletAddress string) (*types.User, error) {
  walletAddress = strings.TrimSpace(walletAddress)
  if walletAddress == "" {
    return nil, fmt.Errorf("missing wallet address")
  }

  if err := us.userRepo.UpdateFields(ctx, nil, userID, map[string]interface{}{"wallet_address": walletAddress}); err != nil {
    return nil, fmt.Errorf("update wallet address: %w", err)
  }

  users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil || len(users) == 0 || users[0] == nil {
    return nil, fmt.Errorf("reload user: %w", err)
  }
  return users[0], nil
}

func (us *userService) GetLeaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
  if limit <= 0 || limit > 100 {
    limit = 25
  }
  users, err := us.userRepo.ListByTotalXPDesc(ctx, nil, limit)
  if err != nil {
    return nil, fmt.Errorf("load leaderboard: %w", err)
  }

  entries := make([]*LeaderboardEntry, 0, len(users))
  for i, user := range users {
    if user == nil {
      continue
    }
    entries = append(entries, &LeaderboardEntry{
      Rank:     i + 1,
      UserID:   user.ID,
      Username: user.Username,
      TotalXP:  user.TotalXP,
    })
  }
  return entries, nil
}
