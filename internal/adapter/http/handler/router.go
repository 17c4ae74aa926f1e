package handler

import (
	"provider-bridge/internal/adapter/http/middleware"
	"provider-bridge/internal/core/ports"
	"provider-bridge/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	CallbackSvc    ports.CallbackService
	LaunchSvc      ports.LaunchService
	TransferSvc    ports.TransferService
	ListSvc        ports.TransactionListService
	GameSvc        ports.GameLaunchService
	RateLimitStore middleware.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Metrics        metrics.Reporter   // nil = metrics disabled
	Docs           *APIDocs           // nil = no /swagger routes
	MaxBodyBytes   int64
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics, deps.Logger))
	}
	r.Use(middleware.MaxBodySize(maxBody))

	// Health check (deep: verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	if deps.Docs != nil {
		swagger := r.Group("/swagger")
		swagger.GET("", deps.Docs.UI)
		swagger.GET("/spec", deps.Docs.Spec)
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1", middleware.TenantPeek())
	if deps.AuditSvc != nil {
		v1.Use(middleware.AuditLog(deps.AuditSvc))
	}

	ph := NewProviderHandler(deps.CallbackSvc, deps.LaunchSvc, deps.TransferSvc, deps.ListSvc)
	provider := v1.Group("/provider")
	{
		provider.GET("/callback", rl("provider_callback"), ph.CallbackQuery)
		provider.POST("/callback", rl("provider_callback"), ph.Callback)
		provider.POST("/launch", rl("provider_launch"), ph.Launch)
		provider.POST("/transfer", rl("provider_transfer"), ph.Transfer)
		provider.POST("/transactions", rl("provider_transactions"), ph.ListTransactions)
	}

	if deps.GameSvc != nil {
		gh := NewGameHandler(deps.GameSvc)
		v1.POST("/games/launch", rl("games_launch"), gh.Launch)
	}

	return r
}
