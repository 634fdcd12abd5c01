package services

import (
  "context"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/types"
)

// SessionClaims is the JWT payload for a signed-in mini-app user.
type SessionClaims struct {
  UserID        string `json:"user_id"`
  FarcasterFID  int64  `json:"fid"`
  WalletAddress string `json:"wallet_address,omitempty"`
  jwt.RegisteredClaims
}

type Session struct {
  Token     string      `json:"token"`
  ExpiresAt time.Time   `json:"expires_at"`
  User      *types.User `json:"user"`
}

type AuthService interface {
  CreateSession(ctx context.Context, fid int64, username, walletAddress string) (*Session, error)
  ParseToken(tokenString string) (*SessionClaims, error)
}

type authService struct {
  db       *gorm.DB
  log      *logger.Logger
  users    UserService
  secret   []byte
  tokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, users UserService, secret string) AuthService {
  serviceLog := baseLog.With("service", "AuthService")
  return &authService{
    db:       db,
    log:      serviceLog,
    users:    users,
    secret:   []byte(secret),
    tokenTTL: 24 * time.Hour,
  }
}

func (as *authService) CreateSession(ctx context.Context, fid int64, username, walletAddress string) (*Session, error) {
  user, err := as.users.UpsertFromFarcaster(ctx, fid, username)
  if err != nil {
    return nil, err
  }
  if walletAddress != "" && walletAddress != user.WalletAddress {
    user, err = as.users.ConnectWallet(ctx, user.ID, walletAddress)
    if err != nil {
      return nil, err
    }
  }

  now := time.Now()
  expiresAt := now.Add(as.tokenTTL)
  claims := &SessionClaims{
    UserID:        user.ID.String(),
    FarcasterFID:  user.FarcasterFID,
    WalletAddress: user.WalletAddress,
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      IssuedAt:  jwt.NewNumericDate(now),
      ExpiresAt: jwt.NewNumericDate(expiresAt),
    },
  }

  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  signed, err := token.SignedString(as.secret)
  if err != nil {
    return nil, fmt.Errorf("sign session token: %w", err)
  }

  return &Session{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}

func (as *authService) ParseToken(tokenString string) (*SessionClaims, error) {
  claims := &SessionClaims{}
  token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
    }
    return as.secret, nil
  })
  if err != nil {
    return nil, err
  }
  if !token.Valid {
    return nil, fmt.Errorf("invalid session token")
  }
  if _, err := uuid.Parse(claims.UserID); err != nil {
    return nil, fmt.Errorf("malformed user id in token: %w", err)
  }
  return claims, nil
}
