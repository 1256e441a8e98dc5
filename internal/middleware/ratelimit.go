package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/carelog-backend/internal/logger"
	"github.com/yungbote/carelog-backend/internal/ratelimit"
	"github.com/yungbote/carelog-backend/internal/requestdata"
)

type RateLimitMiddleware struct {
	log     *logger.Logger
	limiter *ratelimit.KeyedLimiter
}

func NewRateLimitMiddleware(log *logger.Logger, limiter *ratelimit.KeyedLimiter) *RateLimitMiddleware {
	middlewareLogger := log.With("middleware", "RateLimitMiddleware")
	return &RateLimitMiddleware{log: middlewareLogger, limiter: limiter}
}

// Limit buckets by authenticated user when available, falling back to client
// IP for public routes.
func (rm *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
			key = rd.UserID.String()
		}
		if !rm.limiter.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
