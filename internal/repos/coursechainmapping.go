package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

type CourseChainMappingRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.CourseChainMapping) ([]*types.CourseChainMapping, error)
  GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.CourseChainMapping, error)
  GetByChainCourseNumber(ctx context.Context, tx *gorm.DB, number uint64) (*types.CourseChainMapping, error)
  GetMaxChainCourseNumber(ctx context.Context, tx *gorm.DB) (uint64, error)
}

type courseChainMappingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseChainMappingRepo(db *gorm.DB, baseLog *logger.Logger) CourseChainMappingRepo {
  repoLog := baseLog.With("repo", "CourseChainMappingRepo")
  return &courseChainMappingRepo{db: db, log: repoLog}
}

func (r *courseChainMappingRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.CourseChainMapping) ([]*types.CourseChainMapping, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.CourseChainMapping{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *courseChainMappingRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.CourseChainMapping, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if courseID == uuid.Nil {
    return nil, nil
  }

  var results []*types.CourseChainMapping
  if err := transaction.WithContext(ctx).
    Where("course_id = ?", courseID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (r *courseChainMappingRepo) GetByChainCourseNumber(ctx context.Context, tx *gorm.DB, number uint64) (*types.CourseChainMapping, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CourseChainMapping
  if err := transaction.WithContext(ctx).
    Where("chain_course_number = ?", number).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (r *courseChainMappingRepo) GetMaxChainCourseNumber(ctx context.Context, tx *gorm.DB) (uint64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var max *uint64
  if err := transaction.WithContext(ctx).
    Model(&types.CourseChainMapping{}).
    Select("MAX(chain_course_number)").
    Scan(&max).Error; err != nil {
    return 0, err
  }
  if max == nil {
    return 0, nil
  }
  return *max, nil
}
