package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/weather/core"
	"github.com/layer-3/weather/service"
)

const tokenKey = "token"

// AuthMiddleware rejects requests without a currently valid token
func AuthMiddleware(forecastService *service.ForecastService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "An Authorization header is expected"})
			return
		}

		token := core.ParseAuthorization(auth)
		if !forecastService.Authorized(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "The authorization provided is invalid"})
			return
		}

		// Set the token in the context
		c.Set(tokenKey, token)

		c.Next()
	}
}

// RateLimitMiddleware answers 429 once a client IP exceeds its allowance
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts"})
			return
		}
		c.Next()
	}
}

// RequestLogger logs every request once it has been handled
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		logger.LogAttrs(c.Request.Context(), level, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}
