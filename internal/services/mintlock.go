package services

import (
  "context"
  "fmt"
  "sync"

  "github.com/google/uuid"
)

// MintLocker enforces at most one in-flight mint per (user, course)
// pair. TryLock returns false when a mint for the pair is already
// running; the caller rejects with MintInProgress instead of queueing.
type MintLocker interface {
  TryLock(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
  Unlock(ctx context.Context, userID, courseID uuid.UUID)
}

type memoryMintLocker struct {
  mu       sync.Mutex
  inFlight map[string]struct{}
}

// NewMemoryMintLocker is the single-process locker.
func NewMemoryMintLocker() MintLocker {
  return &memoryMintLocker{inFlight: map[string]struct{}{}}
}

func mintLockKey(userID, courseID uuid.UUID) string {
  return fmt.Sprintf("mintlock:%s:%s", userID.String(), courseID.String())
}

func (m *memoryMintLocker) TryLock(_ context.Context, userID, courseID uuid.UUID) (bool, error) {
  key := mintLockKey(userID, courseID)
  m.mu.Lock()
  defer m.mu.Unlock()
  if _, held := m.inFlight[key]; held {
    return false, nil
  }
  m.inFlight[key] = struct{}{}
  return true, nil
}

func (m *memoryMintLocker) Unlock(_ context.Context, userID, courseID uuid.UUID) {
  key := mintLockKey(userID, courseID)
  m.mu.Lock()
  defer m.mu.Unlock()
  delete(m.inFlight, key)
}
