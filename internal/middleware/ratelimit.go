package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/perio-stage-predictor/internal/domain"
)

const (
	maxTrackedClients = 10000
	clientIdleTTL     = 10 * time.Minute
)

// RateLimiter throttles requests per client IP with a token bucket.
type RateLimiter struct {
	logger  *logrus.Logger
	config  domain.RateLimitConfig
	clients *expirable.LRU[string, *rate.Limiter]
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(config domain.RateLimitConfig, logger *logrus.Logger) *RateLimiter {
	return &RateLimiter{
		logger:  logger,
		config:  config,
		clients: expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, clientIdleTTL),
	}
}

// Allow reports whether a request from clientID may proceed.
func (rl *RateLimiter) Allow(clientID string) bool {
	if !rl.config.Enabled {
		return true
	}

	limiter, ok := rl.clients.Get(clientID)
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.Burst)
	}
	// Re-adding refreshes the idle deadline.
	rl.clients.Add(clientID, limiter)

	return limiter.Allow()
}

// RateLimitMessage is shown to clients that exceed the limit.
const RateLimitMessage = "Too many submissions, please wait a moment"

// Middleware rejects requests over the limit with a 429 JSON error.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return rl.MiddlewareFunc(func(c *gin.Context) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": domain.NewAPIError(
				domain.ErrRateLimit,
				RateLimitMessage,
				"",
				c.GetString(CorrelationIDKey),
			),
		})
	})
}

// MiddlewareFunc calls deny to write the response for requests over the
// limit; the chain is aborted afterwards.
func (rl *RateLimiter) MiddlewareFunc(deny gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.ClientIP()
		if rl.Allow(clientID) {
			c.Next()
			return
		}

		rl.logger.WithFields(logrus.Fields{
			"client_ip": clientID,
			"path":      c.Request.URL.Path,
		}).Warn("Request denied: rate limit exceeded")

		deny(c)
		c.Abort()
	}
}
