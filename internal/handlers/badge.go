package handlers

import (
  "errors"
  "net/http"
  "sync"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/synaulearn/synaulearn-backend/internal/chain"
  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/requestdata"
  "github.com/synaulearn/synaulearn-backend/internal/services"
)

type BadgeHandler struct {
  log       *logger.Logger
  badgeMint services.BadgeMintService
  badgeArt  services.BadgeArtService
}

func NewBadgeHandler(log *logger.Logger, badgeMint services.BadgeMintService, badgeArt services.BadgeArtService) *BadgeHandler {
  return &BadgeHandler{
    log:       log.With("handler", "BadgeHandler"),
    badgeMint: badgeMint,
    badgeArt:  badgeArt,
  }
}

func (h *BadgeHandler) ListMintableCourses(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  rows, err := h.badgeMint.ListMintableCourses(c.Request.Context(), rd.UserID, rd.WalletAddress)
  if err != nil {
    h.log.Error("ListMintableCourses failed", "error", err, "user_id", rd.UserID)
    RespondError(c, http.StatusInternalServerError, "load_mintable_failed", err)
    return
  }
  RespondOK(c, gin.H{"courses": rows})
}

func (h *BadgeHandler) MintBadge(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  courseID, err := uuid.Parse(c.Param("course_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
    return
  }

  var (
    mu       sync.Mutex
    statuses []string
  )
  onStatus := func(state string) {
    mu.Lock()
    statuses = append(statuses, state)
    mu.Unlock()
  }

  result, err := h.badgeMint.Mint(c.Request.Context(), courseID, rd.UserID, rd.WalletAddress, onStatus)
  if err != nil {
    h.log.Error("MintBadge failed", "error", err, "user_id", rd.UserID, "course_id", courseID)
    h.respondMintError(c, err, statuses)
    return
  }
  RespondOK(c, gin.H{"result": result, "statuses": statuses})
}

func (h *BadgeHandler) GetBadgeImage(c *gin.Context) {
  courseID, err := uuid.Parse(c.Param("course_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
    return
  }
  img, err := h.badgeArt.RenderCourseBadge(c.Request.Context(), courseID)
  if err != nil {
    h.log.Error("GetBadgeImage failed", "error", err, "course_id", courseID)
    RespondError(c, http.StatusNotFound, "badge_image_failed", err)
    return
  }
  c.Header("Cache-Control", "public, max-age=86400")
  c.Data(http.StatusOK, "image/png", img)
}

func (h *BadgeHandler) respondMintError(c *gin.Context, err error, statuses []string) {
  var me *chain.MintError
  if !errors.As(err, &me) {
    RespondError(c, http.StatusInternalServerError, "mint_failed", err)
    return
  }
  c.JSON(mintErrorStatus(me.Kind), gin.H{
    "error": APIError{
      Message: me.Error(),
      Code:    string(me.Kind),
    },
    "tx_hash":  me.TxHash,
    "statuses": statuses,
  })
}

func mintErrorStatus(kind chain.ErrorKind) int {
  switch kind {
  case chain.KindNotEligible:
    return http.StatusForbidden
  case chain.KindWalletNotConnected, chain.KindUserRejected:
    return http.StatusBadRequest
  case chain.KindMintInProgress, chain.KindAlreadyMinted:
    return http.StatusConflict
  case chain.KindUnmappedCourse:
    return http.StatusUnprocessableEntity
  case chain.KindInsufficientFunds:
    return http.StatusPaymentRequired
  case chain.KindConfirmationTimeout:
    return http.StatusGatewayTimeout
  case chain.KindNetworkSwitchFailed, chain.KindSubmissionFailed, chain.KindTransactionReverted:
    return http.StatusBadGateway
  default:
    return http.StatusInternalServerError
  }
}
