package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/services"
)

type AuthHandler struct {
  log         *logger.Logger
  authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
  return &AuthHandler{
    log:         log.With("handler", "AuthHandler"),
    authService: authService,
  }
}

type createSessionRequest struct {
  FarcasterFID  int64  `json:"fid" binding:"required"`
  Username      string `json:"username"`
  WalletAddress string `json:"wallet_address"`
}

func (h *AuthHandler) CreateSession(c *gin.Context) {
  var req createSessionRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  session, err := h.authService.CreateSession(c.Request.Context(), req.FarcasterFID, req.Username, req.WalletAddress)
  if err != nil {
    h.log.Error("CreateSession failed", "error", err, "fid", req.FarcasterFID)
    RespondError(c, http.StatusInternalServerError, "session_failed", err)
    return
  }
  RespondOK(c, session)
}
