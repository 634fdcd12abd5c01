package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

type CardProgressRepo interface {
  GetByUserAndCardIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cardIDs []uuid.UUID) ([]*types.UserCardProgress, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserCardProgress, error)
  CountCompletedByUserAndCardIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cardIDs []uuid.UUID) (int64, error)
  Upsert(ctx context.Context, tx *gorm.DB, row *types.UserCardProgress) error
}

type cardProgressRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCardProgressRepo(db *gorm.DB, baseLog *logger.Logger) CardProgressRepo {
  repoLog := baseLog.With("repo", "CardProgressRepo")
  return &cardProgressRepo{db: db, log: repoLog}
}

func (r *cardProgressRepo) GetByUserAndCardIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cardIDs []uuid.UUID) ([]*types.UserCardProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.UserCardProgress
  if userID == uuid.Nil || len(cardIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND card_id IN ?", userID, cardIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *cardProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserCardProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.UserCardProgress
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *cardProgressRepo) CountCompletedByUserAndCardIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cardIDs []uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil || len(cardIDs) == 0 {
    return 0, nil
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.UserCardProgress{}).
    Where("user_id = ? AND card_id IN ? AND quiz_completed = ?", userID, cardIDs, true).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (r *cardProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UserCardProgress) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  // Upsert by unique user_id + card_id
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND card_id = ?", row.UserID, row.CardID).
    Assign(map[string]interface{}{
      "flashcard_viewed": row.FlashcardViewed,
      "quiz_completed":   row.QuizCompleted,
      "quiz_correct":     row.QuizCorrect,
      "xp_earned":        row.XPEarned,
      "completed_at":     row.CompletedAt,
    }).
    FirstOrCreate(row).Error; err != nil {
    return err
  }
  return nil
}
