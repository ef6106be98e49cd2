// Package api exposes the relationship service over HTTP with gin.
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"friendgraph/backend/internal/metrics"
)

// RouterConfig holds the collaborators and settings for NewRouter
type RouterConfig struct {
	Service        FriendshipService
	Health         HealthChecker
	Metrics        *metrics.Metrics // nil disables /metrics and request metrics
	Logger         *zap.Logger
	RateLimiter    RateLimiter // nil disables rate limiting
	AllowedOrigins []string
	Production     bool
}

// NewRouter builds the gin engine with middleware and routes
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if cfg.Service == nil {
		return nil, fmt.Errorf("router: friendship service is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if err := registerValidators(); err != nil {
		return nil, err
	}

	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestID(cfg.Logger))
	router.Use(ginLogger(cfg.Logger))
	router.Use(gin.Recovery())
	if cfg.Metrics != nil {
		router.Use(observeRequests(cfg.Metrics))
	}
	router.Use(cors(cfg.AllowedOrigins))

	// Health check
	router.GET("/health", healthHandler(cfg.Health))
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	h := &Handler{service: cfg.Service, metrics: cfg.Metrics}

	friendships := router.Group("/friendships")
	if cfg.RateLimiter != nil {
		friendships.Use(rateLimit(cfg.RateLimiter))
	}
	{
		friendships.POST("/initiate", h.Initiate)
		friendships.PUT("/respond", h.Respond)
		friendships.GET("/:user_id", h.Friends)
	}

	return router, nil
}
