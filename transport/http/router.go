package http

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/weather/service"
)

// Config holds router options
type Config struct {
	// LoginRatePerMinute limits token issuance per client IP, zero disables the limit
	LoginRatePerMinute int

	// TrustedProxies lists proxy IPs or CIDRs whose forwarding headers are believed.
	// Empty means client IPs always come from the connection.
	TrustedProxies []string
}

// SetupRouter sets up the Gin router
func SetupRouter(forecastService *service.ForecastService, cfg Config, logger *slog.Logger) (*gin.Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(gin.Recovery(), RequestLogger(logger))

	// Create handlers
	handlers := NewForecastHandlers(forecastService)

	router.GET("/", handlers.Health)
	router.HEAD("/", handlers.Health)

	// Login routes
	login := router.Group("/login")
	{
		issue := []gin.HandlerFunc{handlers.Login}
		if cfg.LoginRatePerMinute > 0 {
			issue = append([]gin.HandlerFunc{RateLimitMiddleware(NewIPRateLimiter(cfg.LoginRatePerMinute))}, issue...)
		}
		login.GET("", issue...)
		login.HEAD("", issue...)
		login.DELETE("", handlers.Logout)
	}

	// Forecast routes, writes require a valid token
	forecasts := router.Group("/weatherforecast")
	{
		forecasts.GET("", handlers.GetForecast)
		forecasts.HEAD("", handlers.GetForecast)
		forecasts.POST("", AuthMiddleware(forecastService), handlers.SetForecast)
	}

	return router, nil
}
