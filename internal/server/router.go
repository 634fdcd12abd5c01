package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/synaulearn/synaulearn-backend/internal/handlers"
  "github.com/synaulearn/synaulearn-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler     *handlers.AuthHandler
  AuthMiddleware  *middleware.AuthMiddleware
  CourseHandler   *handlers.CourseHandler
  ProgressHandler *handlers.ProgressHandler
  BadgeHandler    *handlers.BadgeHandler
  UserHandler     *handlers.UserHandler
  AllowedOrigins  []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  origins := cfg.AllowedOrigins
  if len(origins) == 0 {
    origins = []string{
      "http://localhost:3000",
      "http://localhost:5173",
    }
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // ===============
  // || Public    ||
  // ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/auth/session", cfg.AuthHandler.CreateSession)
  router.GET("/badges/:course_id/image.png", cfg.BadgeHandler.GetBadgeImage)

  // ===============
  // || Protected ||
  // ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Courses
  protected.GET("/courses", cfg.CourseHandler.ListCourses)
  protected.GET("/courses/:course_id", cfg.CourseHandler.GetCourse)
  protected.GET("/courses/:course_id/lessons", cfg.CourseHandler.ListCourseLessons)
  protected.GET("/lessons/:lesson_id", cfg.CourseHandler.GetLesson)
  // Progress
  protected.POST("/progress/cards", cfg.ProgressHandler.SaveCardProgress)
  protected.GET("/progress/courses/:course_id", cfg.ProgressHandler.GetCourseProgress)
  // Badges
  protected.GET("/badges/mintable", cfg.BadgeHandler.ListMintableCourses)
  protected.POST("/badges/:course_id/mint", cfg.BadgeHandler.MintBadge)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  protected.POST("/user/wallet", cfg.UserHandler.ConnectWallet)
  protected.GET("/leaderboard", cfg.UserHandler.GetLeaderboard)

  return router
}
