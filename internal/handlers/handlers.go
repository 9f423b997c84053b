package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"skillup/api/internal/config"
	"skillup/api/internal/kv"
	"skillup/api/internal/llm"
	"skillup/api/internal/middleware"
	"skillup/api/internal/repository"
	"skillup/api/internal/service"
)

type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	store     kv.Store
	auth      *service.AuthService
	profile   *service.ProfileService
	progress  *service.ProgressService
	content   *service.ContentService
	feedback  *service.FeedbackService
	resources *service.ResourceService
	admin     *service.AdminService
}

// NewHandlerSet builds every repository and service over store. sink may be nil,
// in which case unparseable model output is only logged.
func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, store kv.Store, completer llm.Completer, sink llm.RawSink) HandlerSet {
	userRepo := repository.NewUserRepository(store, log)
	sessionRepo := repository.NewSessionRepository(store, log)
	badgeRepo := repository.NewBadgeRepository(store, log)
	progressRepo := repository.NewProgressRepository(store, log)
	assessmentRepo := repository.NewAssessmentRepository(store, log)
	feedbackRepo := repository.NewFeedbackRepository(store, log)
	resourceRepo := repository.NewResourceRepository(store, log)

	gateway := llm.NewGateway(completer, sink, log)

	return HandlerSet{
		log:       log,
		cfg:       cfg,
		store:     store,
		auth:      service.NewAuthService(userRepo, sessionRepo, badgeRepo, cfg, log),
		profile:   service.NewProfileService(userRepo, sessionRepo, badgeRepo, progressRepo, log),
		progress:  service.NewProgressService(userRepo, progressRepo, badgeRepo, log),
		content:   service.NewContentService(gateway, assessmentRepo, log),
		feedback:  service.NewFeedbackService(feedbackRepo, log),
		resources: service.NewResourceService(resourceRepo, log),
		admin:     service.NewAdminService(userRepo, sessionRepo, progressRepo, assessmentRepo, badgeRepo, log),
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.Use(middleware.Session(h.auth))

	router.GET("/health", h.Health)
	router.POST("/seed/admin", h.SeedAdmin)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/login", h.Login)
		auth.POST("/admin-login", h.AdminLogin)
		auth.GET("/session", h.Session)
		auth.POST("/logout", h.Logout)
	}

	user := router.Group("/user", middleware.RequireSession())
	{
		user.GET("/profile", h.GetProfile)
		user.PUT("/profile", h.UpdateProfile)
		user.POST("/progress", h.UpdateProgress)
		user.GET("/modules", h.ListProgress)
	}

	ai := router.Group("/ai", middleware.RequireSession())
	{
		ai.POST("/generate-assessment", h.GenerateAssessment)
		ai.POST("/analyze-assessment", h.AnalyzeAssessment)
		ai.POST("/generate-modules", h.GenerateModules)
		ai.POST("/generate-lesson", h.GenerateLesson)
	}
	router.GET("/assessment/results", middleware.RequireSession(), h.AssessmentResults)

	router.POST("/feedback/submit", h.SubmitFeedback)
	router.GET("/feedback/all", middleware.RequireAdmin(), h.ListFeedback)
	router.PUT("/feedback/:id", middleware.RequireAdmin(), h.UpdateFeedback)

	router.GET("/resources", h.ListResources)
	resources := router.Group("/resources", middleware.RequireAdmin())
	{
		resources.POST("", h.CreateResource)
		resources.PUT("/:id", h.UpdateResource)
		resources.DELETE("/:id", h.DeleteResource)
	}

	admin := router.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/users", h.AdminListUsers)
		admin.PUT("/users/:id", h.AdminUpdateUser)
		admin.DELETE("/users/:id", h.AdminDeleteUser)
		admin.GET("/analytics", h.AdminAnalytics)
	}
}
