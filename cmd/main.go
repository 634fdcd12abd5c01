package main

import (
  "fmt"
  "math/big"
  "os"
  "strings"

  "github.com/ethereum/go-ethereum/common"
  goredis "github.com/redis/go-redis/v9"

  "github.com/synaulearn/synaulearn-backend/internal/chain"
  "github.com/synaulearn/synaulearn-backend/internal/db"
  "github.com/synaulearn/synaulearn-backend/internal/handlers"
  "github.com/synaulearn/synaulearn-backend/internal/logger"
  "github.com/synaulearn/synaulearn-backend/internal/middleware"
  "github.com/synaulearn/synaulearn-backend/internal/repos"
  "github.com/synaulearn/synaulearn-backend/internal/server"
  "github.com/synaulearn/synaulearn-backend/internal/services"
  "github.com/synaulearn/synaulearn-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  rpcURL := utils.GetEnv("BASE_RPC_URL", "https://mainnet.base.org", log)
  chainID := utils.GetEnvAsInt64("BASE_CHAIN_ID", 8453, log)
  contractAddress := utils.GetEnv("BADGE_CONTRACT_ADDRESS", "", log)
  minterKeyHex := utils.GetEnv("BADGE_MINTER_KEY", "", log)
  publicBaseURL := utils.GetEnv("PUBLIC_BASE_URL", "http://localhost:8080", log)
  redisURL := utils.GetEnv("REDIS_URL", "", log)
  allowedOrigins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Database init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  courseRepo := repos.NewCourseRepo(thePG, log)
  lessonRepo := repos.NewLessonRepo(thePG, log)
  cardRepo := repos.NewCardRepo(thePG, log)
  cardProgressRepo := repos.NewCardProgressRepo(thePG, log)
  mintedBadgeRepo := repos.NewMintedBadgeRepo(thePG, log)
  mappingRepo := repos.NewCourseChainMappingRepo(thePG, log)

  // Chain
  log.Info("Setting up chain ledger from main...")
  ledger, err := chain.NewLedger(chain.ClientConfig{
    RPCURL:          rpcURL,
    ChainID:         big.NewInt(chainID),
    ContractAddress: common.HexToAddress(contractAddress),
    MinterKeyHex:    minterKeyHex,
  }, log)
  if err != nil {
    log.Error("Could not init chain ledger", "error", err)
    os.Exit(1)
  }

  // Mint lock
  var locker services.MintLocker
  if redisURL != "" {
    opts, err := goredis.ParseURL(redisURL)
    if err != nil {
      log.Error("Invalid REDIS_URL", "error", err)
      os.Exit(1)
    }
    locker = services.NewRedisMintLocker(goredis.NewClient(opts), log)
  } else {
    locker = services.NewMemoryMintLocker()
  }

  // Services
  log.Info("Setting up Services from main...")
  progressService := services.NewProgressService(thePG, log, lessonRepo, cardRepo, cardProgressRepo, userRepo)
  mappingService := services.NewCourseMappingService(thePG, log, mappingRepo)
  userService := services.NewUserService(thePG, log, userRepo, mintedBadgeRepo, cardProgressRepo)
  authService := services.NewAuthService(thePG, log, userService, jwtSecretKey)
  courseService := services.NewCourseService(thePG, log, courseRepo, lessonRepo, cardRepo)
  badgeArtService, err := services.NewBadgeArtService(log, courseRepo)
  if err != nil {
    log.Error("Could not init BadgeArtService", "error", err)
    os.Exit(1)
  }
  badgeMintService := services.NewBadgeMintService(
    thePG,
    log,
    courseRepo,
    mintedBadgeRepo,
    progressService,
    mappingService,
    ledger,
    locker,
    publicBaseURL,
  )

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(log, authService)
  courseHandler := handlers.NewCourseHandler(log, courseService)
  progressHandler := handlers.NewProgressHandler(log, progressService)
  badgeHandler := handlers.NewBadgeHandler(log, badgeMintService, badgeArtService)
  userHandler := handlers.NewUserHandler(log, userService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  var origins []string
  if allowedOrigins != "" {
    origins = strings.Split(allowedOrigins, ",")
  }
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:     authHandler,
    AuthMiddleware:  authMiddleware,
    CourseHandler:   courseHandler,
    ProgressHandler: progressHandler,
    BadgeHandler:    badgeHandler,
    UserHandler:     userHandler,
    AllowedOrigins:  origins,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
