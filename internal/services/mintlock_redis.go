package services

import (
  "context"
  "time"

  "github.com/google/uuid"
  goredis "github.com/redis/go-redis/v9"

  "github.com/synaulearn/synaulearn-backend/internal/logger"
)

// redisMintLocker holds the single-flight guarantee across replicas.
// The TTL is a safety valve: a crashed replica releases its locks
// without operator intervention.
type redisMintLocker struct {
  log *logger.Logger
  rdb *goredis.Client
  ttl time.Duration
}

func NewRedisMintLocker(rdb *goredis.Client, baseLog *logger.Logger) MintLocker {
  return &redisMintLocker{
    log: baseLog.With("service", "RedisMintLocker"),
    rdb: rdb,
    ttl: 5 * time.Minute,
  }
}

func (r *redisMintLocker) TryLock(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
  acquired, err := r.rdb.SetNX(ctx, mintLockKey(userID, courseID), "1", r.ttl).Result()
  if err != nil {
    return false, err
  }
  return acquired, nil
}

func (r *redisMintLocker) Unlock(ctx context.Context, userID, courseID uuid.UUID) {
  if err := r.rdb.Del(ctx, mintLockKey(userID, courseID)).Err(); err != nil {
    r.log.Warn("mint lock release failed", "user_id", userID.String(), "course_id", courseID.String(), "error", err)
  }
}
