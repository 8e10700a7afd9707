package routes

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/whisperrid/backend/internal/config"
	"github.com/whisperrid/backend/internal/handlers"
	"github.com/whisperrid/backend/internal/middleware"
)

// Handlers bundles every HTTP handler the router exposes
type Handlers struct {
	Health       *handlers.HealthHandler
	Dashboard    *handlers.DashboardHandler
	Verification *handlers.VerificationHandler
	Case         *handlers.CaseHandler
	Assistant    *handlers.AssistantHandler
	Settings     *handlers.SettingsHandler
}

// NewRouter creates the gin engine with global middleware applied
func NewRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// ClientIP keys the rate limiter, so forwarded headers count only from known proxies
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("Invalid trusted proxies %v, trusting none: %v", cfg.TrustedProxies, err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURLs,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	secureHeaders := middleware.DefaultSecureHeadersConfig()
	secureHeaders.UseHSTS = cfg.IsProduction()
	secureHeaders.HSTSMaxAge = cfg.Security.HSTSMaxAge
	secureHeaders.HSTSIncludeSubdomains = cfg.Security.HSTSIncludeSubdomains
	secureHeaders.CSPDirectives = cfg.Security.CSPDirectives
	router.Use(middleware.SecureHeadersMiddleware(secureHeaders))

	return router
}

// RegisterRoutes registers every API route. aiLimiter guards the endpoints that call
// the generative model.
func RegisterRoutes(router *gin.Engine, h Handlers, aiLimiter *middleware.RateLimiter) {
	router.GET("/health", h.Health.Health)

	api := router.Group("/api")

	RegisterDashboardRoutes(api, h.Dashboard)
	RegisterVerificationRoutes(api, h.Verification)
	RegisterCaseRoutes(api, h.Case, aiLimiter)
	RegisterAssistantRoutes(api, h.Assistant, aiLimiter)
	RegisterSettingsRoutes(api, h.Settings)
}

// RegisterDashboardRoutes registers dashboard routes
func RegisterDashboardRoutes(api *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	api.GET("/dashboard", dashboardHandler.GetDashboard)
}

// RegisterVerificationRoutes registers verification list routes
func RegisterVerificationRoutes(api *gin.RouterGroup, verificationHandler *handlers.VerificationHandler) {
	verificationGroup := api.Group("/verifications")
	{
		verificationGroup.GET("", verificationHandler.ListVerifications)
		verificationGroup.GET("/statuses", verificationHandler.ListStatuses)
	}
}

// RegisterCaseRoutes registers case review routes
func RegisterCaseRoutes(api *gin.RouterGroup, caseHandler *handlers.CaseHandler, aiLimiter *middleware.RateLimiter) {
	caseGroup := api.Group("/cases/:id")
	{
		caseGroup.GET("", caseHandler.GetCase)
		caseGroup.GET("/activity", caseHandler.GetCaseActivity)
		caseGroup.POST("/assessment", aiLimiter.Middleware(), caseHandler.AssessCase)
	}
}

// RegisterAssistantRoutes registers the assistant chat route
func RegisterAssistantRoutes(api *gin.RouterGroup, assistantHandler *handlers.AssistantHandler, aiLimiter *middleware.RateLimiter) {
	api.POST("/assistant/chat", aiLimiter.Middleware(), assistantHandler.Chat)
}

// RegisterSettingsRoutes registers organization settings routes
func RegisterSettingsRoutes(api *gin.RouterGroup, settingsHandler *handlers.SettingsHandler) {
	settingsGroup := api.Group("/settings")
	{
		settingsGroup.GET("/organization", settingsHandler.GetOrganization)
		settingsGroup.PUT("/organization", settingsHandler.UpdateOrganization)
	}
}
