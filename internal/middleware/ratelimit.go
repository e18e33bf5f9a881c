package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewMemoryLimiter builds an in-process limiter from a formatted rate such
// as "5-M" (five requests per minute).
func NewMemoryLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formatted, err)
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit limits HTML form posts by client IP. Over the limit the
// "error.html" page is rendered with a 429.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		logger := GetLoggerFromCtx(c.Request.Context())

		lctx, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			// Fail open.
			logger.Error("Failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
			c.Next()
			return
		}

		if lctx.Reached {
			logger.Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", lctx.Limit))
			c.HTML(http.StatusTooManyRequests, "error.html", gin.H{
				"Title":          "429",
				"Error":          domain.MsgTooManyRequests,
				"LoggedOutLabel": domain.MsgLoggedOut,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GinMiddlewarize wraps limitergin.NewMiddleware for the JSON API. Besides
// limiting it sets the X-RateLimit-* response headers.
func GinMiddlewarize(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return limitergin.NewMiddleware(limiterInstance,
		limitergin.WithLimitReachedHandler(func(c *gin.Context) {
			GetLoggerFromCtx(c.Request.Context()).Warn("API rate limit exceeded", slog.String("ip", c.ClientIP()))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": domain.MsgTooManyRequests})
		}),
		limitergin.WithErrorHandler(func(c *gin.Context, err error) {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
		}),
	)
}
