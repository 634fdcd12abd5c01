package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

type CardRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.Card) ([]*types.Card, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Card, error)
  GetByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.Card, error)
  GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.Card, error)
  CountByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) (int64, error)
}

type cardRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCardRepo(db *gorm.DB, baseLog *logger.Logger) CardRepo {
  repoLog := baseLog.With("repo", "CardRepo")
  return &cardRepo{db: db, log: repoLog}
}

func (r *cardRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Card) ([]*types.Card, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.Card{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *cardRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Card, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Card
  if len(ids) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *cardRepo) GetByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.Card, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Card
  if lessonID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("lesson_id = ?", lessonID).
    Order("card_number ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *cardRepo) GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.Card, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Card
  if len(lessonIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("lesson_id IN ?", lessonIDs).
    Order("card_number ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *cardRepo) CountByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(lessonIDs) == 0 {
    return 0, nil
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Card{}).
    Where("lesson_id IN ?", lessonIDs).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
