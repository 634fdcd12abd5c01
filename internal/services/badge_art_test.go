package services

import (
  "bytes"
  "context"
  "image/png"
  "testing"

  "github.com/google/uuid"

  "github.com/synaulearn/synaulearn-backend/internal/repos"
  "github.com/synaulearn/synaulearn-backend/internal/repos/testutil"
)

func TestRenderCourseBadge(t *testing.T) {
  db := testutil.DB(t)
  log := testutil.Logger(t)
  svc, err := NewBadgeArtService(log, repos.NewCourseRepo(db, log))
  if err != nil {
    t.Fatalf("NewBadgeArtService: %v", err)
  }
  ctx := context.Background()
  course := testutil.SeedCourse(t, ctx, db, "Render Course")

  img, err := svc.RenderCourseBadge(ctx, course.ID)
  if err != nil {
    t.Fatalf("RenderCourseBadge: %v", err)
  }

  decoded, err := png.Decode(bytes.NewReader(img))
  if err != nil {
    t.Fatalf("decode rendered png: %v", err)
  }
  bounds := decoded.Bounds()
  if bounds.Dx() != badgeImageSize || bounds.Dy() != badgeImageSize {
    t.Fatalf("image size: got=%dx%d", bounds.Dx(), bounds.Dy())
  }

  // Second render is served from the cache and identical.
  again, err := svc.RenderCourseBadge(ctx, course.ID)
  if err != nil {
    t.Fatalf("RenderCourseBadge cached: %v", err)
  }
  if !bytes.Equal(img, again) {
    t.Fatalf("cached render differs")
  }

  if _, err := svc.RenderCourseBadge(ctx, uuid.New()); err == nil {
    t.Fatalf("render for unknown course: expected error")
  }
}
