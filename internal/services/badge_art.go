package services

import (
  "bytes"
  "context"
  "fmt"
  "image/color"
  "image/png"
  "sync"

  "github.com/fogleman/gg"
  "github.com/golang/freetype/truetype"
  "github.com/google/uuid"
  "golang.org/x/image/font"
  "golang.org/x/image/font/gofont/gobold"
  "golang.org/x/image/font/gofont/goregular"

  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/repos"
)

const (
  badgeImageSize   = 600
  badgeRingRadius  = 220.0
  badgeTitleSize   = 40.0
  badgeEmojiSize   = 120.0
  badgeFooterSize  = 22.0
  badgeFooterLabel = "SynauLearn"
)

// BadgeArtService renders the course badge PNG served behind the
// token metadata's image URL.
type BadgeArtService interface {
  RenderCourseBadge(ctx context.Context, courseID uuid.UUID) ([]byte, error)
}

type badgeArtService struct {
  log        *logger.Logger
  courseRepo repos.CourseRepo

  mu    sync.Mutex
  cache map[uuid.UUID][]byte

  titleFace  font.Face
  footerFace font.Face
  emojiFace  font.Face
}

func NewBadgeArtService(baseLog *logger.Logger, courseRepo repos.CourseRepo) (BadgeArtService, error) {
  serviceLog := baseLog.With("service", "BadgeArtService")

  boldFont, err := truetype.Parse(gobold.TTF)
  if err != nil {
    return nil, fmt.Errorf("parse bold font: %w", err)
  }
  regularFont, err := truetype.Parse(goregular.TTF)
  if err != nil {
    return nil, fmt.Errorf("parse regular font: %w", err)
  }

  return &badgeArtService{
    log:        serviceLog,
    courseRepo: courseRepo,
    cache:      map[uuid.UUID][]byte{},
    titleFace:  truetype.NewFace(boldFont, &truetype.Options{Size: badgeTitleSize}),
    footerFace: truetype.NewFace(regularFont, &truetype.Options{Size: badgeFooterSize}),
    emojiFace:  truetype.NewFace(boldFont, &truetype.Options{Size: badgeEmojiSize}),
  }, nil
}

func (ba *badgeArtService) RenderCourseBadge(ctx context.Context, courseID uuid.UUID) ([]byte, error) {
  ba.mu.Lock()
  if cached, ok := ba.cache[courseID]; ok {
    ba.mu.Unlock()
    return cached, nil
  }
  ba.mu.Unlock()

  courses, err := ba.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("load course: %w", err)
  }
  if len(courses) == 0 || courses[0] == nil {
    return nil, fmt.Errorf("course %s not found", courseID)
  }
  course := courses[0]

  dc := gg.NewContext(badgeImageSize, badgeImageSize)

  // Deep navy field with a violet ring, the mini-app's badge look.
  dc.SetColor(color.RGBA{R: 0x10, G: 0x14, B: 0x2b, A: 0xff})
  dc.Clear()

  center := float64(badgeImageSize) / 2
  grad := gg.NewRadialGradient(center, center, 40, center, center, badgeRingRadius)
  grad.AddColorStop(0, color.RGBA{R: 0x3b, G: 0x2f, B: 0x63, A: 0xff})
  grad.AddColorStop(1, color.RGBA{R: 0x1a, G: 0x1f, B: 0x3d, A: 0xff})
  dc.SetFillStyle(grad)
  dc.DrawCircle(center, center, badgeRingRadius)
  dc.Fill()

  dc.SetColor(color.RGBA{R: 0x8b, G: 0x5c, B: 0xf6, A: 0xff})
  dc.SetLineWidth(8)
  dc.DrawCircle(center, center, badgeRingRadius)
  dc.Stroke()

  emoji := course.Emoji
  if emoji == "" {
    emoji = "★"
  }
  dc.SetFontFace(ba.emojiFace)
  dc.SetColor(color.White)
  dc.DrawStringAnchored(emoji, center, center-40, 0.5, 0.5)

  dc.SetFontFace(ba.titleFace)
  dc.DrawStringWrapped(course.Title, center, center+110, 0.5, 0.5, badgeRingRadius*1.6, 1.2, gg.AlignCenter)

  dc.SetFontFace(ba.footerFace)
  dc.SetColor(color.RGBA{R: 0xa5, G: 0xb4, B: 0xfc, A: 0xff})
  footer := fmt.Sprintf("%s  ·  %d lessons", badgeFooterLabel, course.TotalLessons)
  dc.DrawStringAnchored(footer, center, float64(badgeImageSize)-48, 0.5, 0.5)

  var buf bytes.Buffer
  if err := png.Encode(&buf, dc.Image()); err != nil {
    return nil, fmt.Errorf("encode badge png: %w", err)
  }

  out := buf.Bytes()
  ba.mu.Lock()
  ba.cache[courseID] = out
  ba.mu.Unlock()
  return out, nil
}
