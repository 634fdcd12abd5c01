package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"

  "github.com/ethereum/go-ethereum/common"
  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/synaulearn/synaulearn-backend/internal/chain"
  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/repos"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

// MintableCourse is one row of the mint screen: a course, whether the
// user finished it, and whether a badge already exists for it.
type MintableCourse struct {
  Course    *types.Course `json:"course"`
  Completed bool          `json:"completed"`
  Minted    bool          `json:"minted"`
  TokenID   uint64        `json:"token_id,omitempty"`
  // Source records where the minted determination came from: "chain"
  // when the contract answered, "cache" when only the local record did.
  Source string `json:"source,omitempty"`
}

// MintResult is the terminal outcome of a successful (or
// success-adjacent) mint.
type MintResult struct {
  CourseID      uuid.UUID `json:"course_id"`
  TxHash        string    `json:"tx_hash,omitempty"`
  TokenID       uint64    `json:"token_id,omitempty"`
  Confirmed     bool      `json:"confirmed"`
  AlreadyMinted bool      `json:"already_minted"`
}

type BadgeMintService interface {
  ListMintableCourses(ctx context.Context, userID uuid.UUID, wallet string) ([]*MintableCourse, error)
  Mint(ctx context.Context, courseID, userID uuid.UUID, wallet string, onStatus chain.StatusFunc) (*MintResult, error)
}

type badgeMintService struct {
  db              *gorm.DB
  log             *logger.Logger
  courseRepo      repos.CourseRepo
  mintedBadgeRepo repos.MintedBadgeRepo
  progress        ProgressService
  mapping         CourseMappingService
  ledger          chain.Ledger
  locker          MintLocker

  badgeImageBaseURL string
  tokenIDRetries    int
  tokenIDRetryDelay time.Duration
}

func NewBadgeMintService(
  db *gorm.DB,
  baseLog *logger.Logger,
  courseRepo repos.CourseRepo,
  mintedBadgeRepo repos.MintedBadgeRepo,
  progress ProgressService,
  mapping CourseMappingService,
  ledger chain.Ledger,
  locker MintLocker,
  badgeImageBaseURL string,
) BadgeMintService {
  serviceLog := baseLog.With("service", "BadgeMintService")
  return &badgeMintService{
    db:                db,
    log:               serviceLog,
    courseRepo:        courseRepo,
    mintedBadgeRepo:   mintedBadgeRepo,
    progress:          progress,
    mapping:           mapping,
    ledger:            ledger,
    locker:            locker,
    badgeImageBaseURL: badgeImageBaseURL,
    tokenIDRetries:    5,
    tokenIDRetryDelay: 2 * time.Second,
  }
}

func (bm *badgeMintService) ListMintableCourses(ctx context.Context, userID uuid.UUID, wallet string) ([]*MintableCourse, error) {
  courses, err := bm.courseRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("load courses: %w", err)
  }

  results := make([]*MintableCourse, len(courses))
  g, gctx := errgroup.WithContext(ctx)
  for i, course := range courses {
    i, course := i, course
    g.Go(func() error {
      row, err := bm.mintStatusForCourse(gctx, userID, wallet, course)
      if err != nil {
        return err
      }
      results[i] = row
      return nil
    })
  }
  if err := g.Wait(); err != nil {
    return nil, err
  }
  return results, nil
}

// mintStatusForCourse resolves one course's row completely: progress
// first, then chain, then the local cache fallback. The chain wins when
// it answers; the cache is only consulted when it does not confirm a
// badge.
func (bm *badgeMintService) mintStatusForCourse(ctx context.Context, userID uuid.UUID, wallet string, course *types.Course) (*MintableCourse, error) {
  row := &MintableCourse{Course: course}
  if course == nil {
    return row, nil
  }

  pct, err := bm.progress.GetCourseProgressPercentage(ctx, userID, course.ID)
  if err != nil {
    return nil, fmt.Errorf("course %s progress: %w", course.ID, err)
  }
  row.Completed = pct == 100
  if !row.Completed {
    return row, nil
  }

  if wallet != "" {
    number, err := bm.mapping.ChainNumberForCourse(ctx, course.ID)
    if err == nil {
      if bm.ledger.HasBadge(ctx, wallet, number) {
        row.Minted = true
        row.Source = "chain"
        tokenID, err := bm.ledger.GetTokenID(ctx, wallet, number)
        if err != nil {
          bm.log.Warn("token id lookup failed after positive hasBadge", "course_id", course.ID, "error", err)
        } else {
          row.TokenID = tokenID
        }
        return row, nil
      }
    } else if !errors.Is(err, ErrUnmappedCourse) {
      return nil, err
    }
  }

  cached, err := bm.mintedBadgeRepo.GetByUserAndCourseID(ctx, nil, userID, course.ID)
  if err != nil {
    bm.log.Warn("minted badge cache lookup failed", "course_id", course.ID, "error", err)
    return row, nil
  }
  if cached != nil {
    row.Minted = true
    row.TokenID = cached.TokenID
    row.Source = "cache"
  }
  return row, nil
}

func (bm *badgeMintService) Mint(ctx context.Context, courseID, userID uuid.UUID, wallet string, onStatus chain.StatusFunc) (*MintResult, error) {
  // Preconditions, in order, short-circuiting.
  pct, err := bm.progress.GetCourseProgressPercentage(ctx, userID, courseID)
  if err != nil {
    return nil, chain.NewMintError(chain.KindUnknown, "", fmt.Errorf("course progress: %w", err))
  }
  if pct != 100 {
    return nil, chain.NewMintError(chain.KindNotEligible, "", fmt.Errorf("course is %d%% complete", pct))
  }
  if wallet == "" || !common.IsHexAddress(wallet) {
    return nil, chain.NewMintError(chain.KindWalletNotConnected, "", fmt.Errorf("no connected wallet"))
  }

  acquired, err := bm.locker.TryLock(ctx, userID, courseID)
  if err != nil {
    return nil, chain.NewMintError(chain.KindUnknown, "", fmt.Errorf("mint lock: %w", err))
  }
  if !acquired {
    return nil, chain.NewMintError(chain.KindMintInProgress, "", fmt.Errorf("a mint for this course is already in flight"))
  }
  defer bm.locker.Unlock(ctx, userID, courseID)

  courses, err := bm.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil || len(courses) == 0 || courses[0] == nil {
    return nil, chain.NewMintError(chain.KindUnknown, "", fmt.Errorf("load course %s: %w", courseID, err))
  }
  course := courses[0]

  number, err := bm.mapping.ChainNumberForCourse(ctx, courseID)
  if err != nil {
    if errors.Is(err, ErrUnmappedCourse) {
      return nil, chain.NewMintError(chain.KindUnmappedCourse, "", err)
    }
    return nil, chain.NewMintError(chain.KindUnknown, "", err)
  }

  // The contract enforces one badge per (wallet, course); re-check
  // before spending gas. A duplicate is a success-adjacent outcome: the
  // user does hold a badge.
  if bm.ledger.HasBadge(ctx, wallet, number) {
    tokenID, err := bm.ledger.GetTokenID(ctx, wallet, number)
    if err != nil {
      bm.log.Warn("token id lookup failed for existing badge", "course_id", courseID, "error", err)
    }
    return &MintResult{CourseID: courseID, TokenID: tokenID, Confirmed: true, AlreadyMinted: true}, nil
  }

  metadata := chain.NewBadgeMetadata(course.Title, number, course.Emoji, bm.badgeImageURL(courseID), course.TotalLessons)
  tokenURI, err := chain.EncodeBadgeTokenURI(metadata)
  if err != nil {
    return nil, chain.NewMintError(chain.KindUnknown, "", err)
  }
  metadataJSON, _ := json.Marshal(metadata)

  res := bm.ledger.SubmitMint(ctx, wallet, number, tokenURI, onStatus)

  switch res.Outcome {
  case chain.OutcomeConfirmedSuccess:
    tokenID := bm.recoverTokenID(ctx, wallet, number)
    bm.persistMintedBadge(userID, courseID, wallet, tokenID, res.TxHash, metadataJSON)
    return &MintResult{CourseID: courseID, TxHash: res.TxHash, TokenID: tokenID, Confirmed: true}, nil

  case chain.OutcomeConfirmedReverted, chain.OutcomeConfirmationTimeout:
    // The hash exists, so the transaction may still matter; record it
    // regardless of the reported outcome.
    bm.persistMintedBadge(userID, courseID, wallet, 0, res.TxHash, metadataJSON)
    return nil, bm.asMintError(res)

  default:
    if mintErr := bm.asMintError(res); mintErr != nil {
      var me *chain.MintError
      if errors.As(mintErr, &me) && me.Kind == chain.KindAlreadyMinted {
        tokenID := bm.recoverTokenID(ctx, wallet, number)
        return &MintResult{CourseID: courseID, TokenID: tokenID, Confirmed: true, AlreadyMinted: true}, nil
      }
      return nil, mintErr
    }
    return nil, chain.NewMintError(chain.KindUnknown, res.TxHash, fmt.Errorf("unexpected submit outcome %q", res.Outcome))
  }
}

func (bm *badgeMintService) asMintError(res chain.SubmitResult) error {
  if res.Err == nil {
    return nil
  }
  var me *chain.MintError
  if errors.As(res.Err, &me) {
    return me
  }
  return chain.NewMintError(chain.KindUnknown, res.TxHash, res.Err)
}

// recoverTokenID polls the contract for the freshly minted token id.
// On-chain view state can lag the receipt by a few blocks.
func (bm *badgeMintService) recoverTokenID(ctx context.Context, wallet string, courseNumber uint64) uint64 {
  for attempt := 0; attempt < bm.tokenIDRetries; attempt++ {
    tokenID, err := bm.ledger.GetTokenID(ctx, wallet, courseNumber)
    if err == nil && tokenID > 0 {
      return tokenID
    }
    if err != nil {
      bm.log.Warn("token id recovery attempt failed", "attempt", attempt+1, "error", err)
    }
    select {
    case <-ctx.Done():
      return 0
    case <-time.After(bm.tokenIDRetryDelay):
    }
  }
  return 0
}

// persistMintedBadge is best-effort bookkeeping. The mint outcome has
// already been decided by the chain; a failed write here is logged and
// nothing else.
func (bm *badgeMintService) persistMintedBadge(userID, courseID uuid.UUID, wallet string, tokenID uint64, txHash string, metadata []byte) {
  if txHash == "" {
    return
  }
  ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
  defer cancel()

  row := &types.MintedBadge{
    ID:            uuid.New(),
    UserID:        userID,
    CourseID:      courseID,
    WalletAddress: wallet,
    TokenID:       tokenID,
    TxHash:        txHash,
    Metadata:      datatypes.JSON(metadata),
    MintedAt:      time.Now(),
  }
  if _, err := bm.mintedBadgeRepo.Create(ctx, nil, []*types.MintedBadge{row}); err != nil {
    bm.log.Warn("minted badge record save failed", "user_id", userID.String(), "course_id", courseID.String(), "tx_hash", txHash, "error", err)
  }
}

func (bm *badgeMintService) badgeImageURL(courseID uuid.UUID) string {
  return fmt.Sprintf("%s/badges/%s/image.png", bm.badgeImageBaseURL, courseID.String())
}
