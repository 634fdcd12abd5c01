package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

type MintedBadgeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.MintedBadge) ([]*types.MintedBadge, error)
  GetByUserAndCourseID(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.MintedBadge, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.MintedBadge, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type mintedBadgeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMintedBadgeRepo(db *gorm.DB, baseLog *logger.Logger) MintedBadgeRepo {
  repoLog := baseLog.With("repo", "MintedBadgeRepo")
  return &mintedBadgeRepo{db: db, log: repoLog}
}

func (r *mintedBadgeRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.MintedBadge) ([]*types.MintedBadge, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.MintedBadge{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *mintedBadgeRepo) GetByUserAndCourseID(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.MintedBadge, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil || courseID == uuid.Nil {
    return nil, nil
  }

  var results []*types.MintedBadge
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND course_id = ?", userID, courseID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (r *mintedBadgeRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.MintedBadge, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.MintedBadge
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("minted_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *mintedBadgeRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if id == uuid.Nil || len(fields) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.MintedBadge{}).
    Where("id = ?", id).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}

func (r *mintedBadgeRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.MintedBadge{}).Error; err != nil {
    return err
  }
  return nil
}
