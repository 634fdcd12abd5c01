package services

import (
  "context"
  "errors"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/repos"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

// ErrUnmappedCourse means a course has no numeric identifier assigned
// for the badge contract.
var ErrUnmappedCourse = errors.New("course has no on-chain mapping")

// CourseMappingService is the identifier-translation boundary between
// database course UUIDs and the numeric course ids the badge contract
// keys on.
type CourseMappingService interface {
  ChainNumberForCourse(ctx context.Context, courseID uuid.UUID) (uint64, error)
  CourseForChainNumber(ctx context.Context, number uint64) (uuid.UUID, error)
  AssignNextChainNumber(ctx context.Context, courseID uuid.UUID) (uint64, error)
}

type courseMappingService struct {
  db          *gorm.DB
  log         *logger.Logger
  mappingRepo repos.CourseChainMappingRepo
}

func NewCourseMappingService(db *gorm.DB, baseLog *logger.Logger, mappingRepo repos.CourseChainMappingRepo) CourseMappingService {
  serviceLog := baseLog.With("service", "CourseMappingService")
  return &courseMappingService{db: db, log: serviceLog, mappingRepo: mappingRepo}
}

func (cm *courseMappingService) ChainNumberForCourse(ctx context.Context, courseID uuid.UUID) (uint64, error) {
  if courseID == uuid.Nil {
    return 0, ErrUnmappedCourse
  }
  row, err := cm.mappingRepo.GetByCourseID(ctx, nil, courseID)
  if err != nil {
    return 0, fmt.Errorf("load course mapping: %w", err)
  }
  if row == nil {
    return 0, ErrUnmappedCourse
  }
  return row.ChainCourseNumber, nil
}

func (cm *courseMappingService) CourseForChainNumber(ctx context.Context, number uint64) (uuid.UUID, error) {
  row, err := cm.mappingRepo.GetByChainCourseNumber(ctx, nil, number)
  if err != nil {
    return uuid.Nil, fmt.Errorf("load course mapping: %w", err)
  }
  if row == nil {
    return uuid.Nil, ErrUnmappedCourse
  }
  return row.CourseID, nil
}

func (cm *courseMappingService) AssignNextChainNumber(ctx context.Context, courseID uuid.UUID) (uint64, error) {
  if courseID == uuid.Nil {
    return 0, fmt.Errorf("missing course id")
  }

  var assigned uint64
  err := cm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, err := cm.mappingRepo.GetByCourseID(ctx, tx, courseID)
    if err != nil {
      return err
    }
    if existing != nil {
      assigned = existing.ChainCourseNumber
      return nil
    }
    max, err := cm.mappingRepo.GetMaxChainCourseNumber(ctx, tx)
    if err != nil {
      return err
    }
    row := &types.CourseChainMapping{
      ID:                uuid.New(),
      CourseID:          courseID,
      ChainCourseNumber: max + 1,
    }
    if _, err := cm.mappingRepo.Create(ctx, tx, []*types.CourseChainMapping{row}); err != nil {
      return err
    }
    assigned = row.ChainCourseNumber
    return nil
  })
  if err != nil {
    return 0, fmt.Errorf("assign chain number: %w", err)
  }
  return assigned, nil
}
