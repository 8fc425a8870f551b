package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"agri-market/internal/api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter guards routes that trigger work on the server.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewRateLimiter(rps float64, burst int, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// Handler rejects requests over the limit with 429.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limiter.Allow() {
			c.Next()
			return
		}
		rl.logger.WarnContext(c.Request.Context(), "rate limit exceeded",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()))

		retry := 1
		if lim := float64(rl.limiter.Limit()); lim > 0 {
			retry = int(math.Ceil(1 / lim))
		}
		c.Header("Retry-After", strconv.Itoa(retry))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.NewError(
			"RATE_LIMIT_EXCEEDED", "Too many requests, retry later",
			map[string]interface{}{"retry_after_seconds": retry}))
	}
}
