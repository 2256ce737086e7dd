package router

import (
	"net/http"
	"time"

	"github.com/edumetrics/assess-backend/internal/config"
	"github.com/edumetrics/assess-backend/internal/handler"
	"github.com/edumetrics/assess-backend/internal/middleware"
	"github.com/edumetrics/assess-backend/internal/response"
	"github.com/edumetrics/assess-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Registration *handler.RegistrationHandler
	Test         *handler.TestHandler
	Subject      *handler.SubjectHandler
	Question     *handler.QuestionHandler
	Result       *handler.ResultHandler
	SystemConfig *handler.SystemConfigHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/settings", handlers.SystemConfig.GetPublic)
	}
	router.GET("/api/v1/subjects", handlers.Subject.List)

	// Rate limiter for auth and registration routes.
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)
		auth.GET("/me", middleware.RequireUserJWT(authService), handlers.Auth.Me)
	}
	router.POST("/api/v1/register", authLimiter.Middleware(), handlers.Registration.Register)

	// ─── 2. Test Session Group (User JWT) ──────────────────────────────
	testAPI := router.Group("/api/v1/test")
	testAPI.Use(middleware.RequireUserJWT(authService))
	{
		testAPI.POST("/start", handlers.Test.Start)
		testAPI.GET("/state", handlers.Test.State)
		testAPI.POST("/answer", handlers.Test.Answer)
		testAPI.POST("/mark", handlers.Test.Mark)
		testAPI.POST("/navigate", handlers.Test.Navigate)
		testAPI.POST("/next", handlers.Test.Next)
		testAPI.POST("/prev", handlers.Test.Prev)
		testAPI.POST("/end", handlers.Test.End)
		testAPI.POST("/submit", handlers.Test.Submit)
	}

	// ─── 3. WebSocket Group (User WS Auth) ─────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireUserWSAuth(authService))
	{
		ws.GET("/test/clock", handlers.WS.ClockStream)
	}

	// ─── 4. Admin Group (Admin JWT) ────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.POST("/questions", handlers.Question.Create)
		adminAPI.GET("/questions", handlers.Question.ListBySubject)
		adminAPI.POST("/subjects", handlers.Subject.Create)
		adminAPI.GET("/results", handlers.Result.HistoryByEmail)
		adminAPI.PUT("/settings", handlers.SystemConfig.Set)
	}

	return router
}
