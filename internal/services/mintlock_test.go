package services

import (
  "context"
  "sync"
  "sync/atomic"
  "testing"

  "github.com/google/uuid"
)

func TestMemoryMintLockerSingleFlight(t *testing.T) {
  locker := NewMemoryMintLocker()
  ctx := context.Background()
  userID := uuid.New()
  courseID := uuid.New()

  var acquired int32
  var wg sync.WaitGroup
  for i := 0; i < 8; i++ {
    wg.Add(1)
    go func() {
      defer wg.Done()
      ok, err := locker.TryLock(ctx, userID, courseID)
      if err != nil {
        t.Errorf("TryLock: %v", err)
        return
      }
      if ok {
        atomic.AddInt32(&acquired, 1)
      }
    }()
  }
  wg.Wait()

  if acquired != 1 {
    t.Fatalf("concurrent TryLock winners: want=1 got=%d", acquired)
  }

  // Release makes the pair lockable again.
  locker.Unlock(ctx, userID, courseID)
  ok, err := locker.TryLock(ctx, userID, courseID)
  if err != nil || !ok {
    t.Fatalf("TryLock after Unlock: ok=%v err=%v", ok, err)
  }

  // A different course for the same user is independent.
  ok, err = locker.TryLock(ctx, userID, uuid.New())
  if err != nil || !ok {
    t.Fatalf("TryLock other course: ok=%v err=%v", ok, err)
  }
}
