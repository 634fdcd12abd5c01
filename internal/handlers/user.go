package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/requestdata"
  "github.com/synaulearn/synaulearn-backend/internal/services"
)

type UserHandler struct {
  log         *logger.Logger
  userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
  return &UserHandler{
    log:         log.With("handler", "UserHandler"),
    userService: userService,
  }
}

func (h *UserHandler) GetMe(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  profile, err := h.userService.GetProfile(c.Request.Context(), rd.UserID)
  if err != nil {
    h.log.Error("GetMe failed", "error", err, "user_id", rd.UserID)
    RespondError(c, http.StatusInternalServerError, "load_profile_failed", err)
    return
  }
  RespondOK(c, profile)
}

type connectWalletRequest struct {
  WalletAddress string `json:"wallet_address" binding:"required"`
}

func (h *UserHandler) ConnectWallet(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  var req connectWalletRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  user, err := h.userService.ConnectWallet(c.Request.Context(), rd.UserID, req.WalletAddress)
  if err != nil {
    h.log.Error("ConnectWallet failed", "error", err, "user_id", rd.UserID)
    RespondError(c, http.StatusInternalServerError, "connect_wallet_failed", err)
    return
  }
  RespondOK(c, gin.H{"user": user})
}

func (h *UserHandler) GetLeaderboard(c *gin.Context) {
  limit := 25
  if raw := c.Query("limit"); raw != "" {
    parsed, err := strconv.Atoi(raw)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "invalid_limit", err)
      return
    }
    limit = parsed
  }
  entries, err := h.userService.GetLeaderboard(c.Request.Context(), limit)
  if err != nil {
    h.log.Error("GetLeaderboard failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "load_leaderboard_failed", err)
    return
  }
  RespondOK(c, gin.H{"leaderboard": entries})
}
