package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/qforge/qforge-backend/internal/config"
	"github.com/qforge/qforge-backend/internal/handler"
	"github.com/qforge/qforge-backend/internal/middleware"
	"github.com/qforge/qforge-backend/internal/response"
	"github.com/qforge/qforge-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Question    *handler.QuestionHandler
	Draft       *handler.DraftHandler
	Paper       *handler.PaperHandler
	Taxonomy    *handler.TaxonomyHandler
	Media       *handler.MediaHandler
	AnswerSheet *handler.AnswerSheetHandler
	Dashboard   *handler.DashboardHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list; otherwise
	// allow all (*) so dev works without extra config.
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

	// Every response carries request metadata.
	router.Use(response.RequestIDMiddleware())

	// Serve uploaded media statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for login (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Auth group: login is public and rate limited, the rest requires a JWT.
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.POST("/logout", middleware.RequireTeacherJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireTeacherJWT(authService), handlers.Auth.Me)
	}

	// Authenticated API: JWT plus active-session check so a logout or a
	// login elsewhere cuts off older tokens.
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireTeacherJWT(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		api.GET("/questions", handlers.Question.List)
		api.POST("/questions", handlers.Question.Create)
		api.POST("/questions/generate", handlers.Question.Generate)
		api.GET("/questions/:id", handlers.Question.Get)
		api.PUT("/questions/:id", handlers.Question.Update)
		api.DELETE("/questions/:id", handlers.Question.Delete)

		api.PUT("/drafts/:id", handlers.Draft.Put)
		api.GET("/drafts/:id", handlers.Draft.Get)
		api.DELETE("/drafts/:id", handlers.Draft.Delete)

		api.GET("/papers", handlers.Paper.List)
		api.POST("/papers", handlers.Paper.Create)
		api.GET("/papers/:id", handlers.Paper.Get)
		api.PUT("/papers/:id", handlers.Paper.Update)
		api.DELETE("/papers/:id", handlers.Paper.Delete)
		api.GET("/papers/:id/answersheets", handlers.AnswerSheet.ListByPaper)

		api.GET("/taxonomy/boards", handlers.Taxonomy.Boards)
		api.GET("/taxonomy/grades", handlers.Taxonomy.Grades)
		api.GET("/taxonomy/subjects", handlers.Taxonomy.ListSubjects)
		api.POST("/taxonomy/subjects", handlers.Taxonomy.CreateSubject)
		api.DELETE("/taxonomy/subjects/:id", handlers.Taxonomy.DeleteSubject)
		api.GET("/taxonomy/subjects/:subjectId/chapters", handlers.Taxonomy.ListChapters)
		api.POST("/taxonomy/subjects/:subjectId/chapters", handlers.Taxonomy.CreateChapter)
		api.DELETE("/taxonomy/chapters/:id", handlers.Taxonomy.DeleteChapter)
		api.GET("/taxonomy/chapters/:chapterId/topics", handlers.Taxonomy.ListTopics)
		api.POST("/taxonomy/chapters/:chapterId/topics", handlers.Taxonomy.CreateTopic)
		api.DELETE("/taxonomy/topics/:id", handlers.Taxonomy.DeleteTopic)

		api.POST("/media/images", handlers.Media.UploadImage)

		api.POST("/answersheets", handlers.AnswerSheet.Upload)
		api.GET("/answersheets/:id", handlers.AnswerSheet.Get)

		api.GET("/dashboard", handlers.Dashboard.Get)
	}

	// WebSocket group. Browser WebSocket clients cannot set headers, so the
	// JWT middleware also accepts a "token" query parameter.
	ws := router.Group("/ws/v1")
	ws.Use(
		middleware.RequireTeacherJWT(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		ws.GET("/answersheets/:id/status", handlers.WS.SheetStatusStream)
	}

	return router
}
