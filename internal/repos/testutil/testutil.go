package testutil

import (
  "fmt"
  "sync"
  "testing"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormLogger "gorm.io/gorm/logger"

  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

var (
  logOnce sync.Once
  logg    *logger.Logger
  logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
  tb.Helper()
  logOnce.Do(func() {
    logg, logErr = logger.New("test")
  })
  if logErr != nil {
    tb.Fatalf("failed to init logger: %v", logErr)
  }
  return logg
}

// DB opens a fresh in-memory database per test with the full schema
// migrated. cache=shared keeps every pooled connection on the same
// store.
func DB(tb testing.TB) *gorm.DB {
  tb.Helper()

  dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormLogger.Default.LogMode(gormLogger.Silent),
  })
  if err != nil {
    tb.Fatalf("failed to open test db: %v", err)
  }
  sqlDB, err := db.DB()
  if err != nil {
    tb.Fatalf("failed to access test db pool: %v", err)
  }
  sqlDB.SetMaxOpenConns(1)
  tb.Cleanup(func() { _ = sqlDB.Close() })

  if err := db.AutoMigrate(
    &types.User{},
    &types.Course{},
    &types.Lesson{},
    &types.Card{},
    &types.UserCardProgress{},
    &types.MintedBadge{},
    &types.CourseChainMapping{},
  ); err != nil {
    tb.Fatalf("failed to migrate test db: %v", err)
  }
  return db
}
