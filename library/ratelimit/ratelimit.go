// Package ratelimit implements a sliding-window limiter whose counters live
// in a shared store, so every service instance sees the same window.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
)

// Counter is the shared counter store, one bucket per fixed window.
type Counter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Get(ctx context.Context, key string) (int64, error)
}

// Limiter approximates a sliding window from two fixed buckets: the current
// bucket count plus the previous bucket weighted by the unexpired fraction
// of the window.
type Limiter struct {
	logger  glog.Logger
	counter Counter
	limit   int64
	window  time.Duration

	now func() time.Time
}

// New creates a limiter allowing limit requests per window per key.
func New(logger glog.Logger, counter Counter, limit int, window time.Duration) (*Limiter, error) {
	if limit <= 0 || window <= 0 {
		return nil, errors.Errorf("limit and window must be positive")
	}

	return &Limiter{
		logger:  logger,
		counter: counter,
		limit:   int64(limit),
		window:  window,
		now:     gutils.Clock.GetUTCNow,
	}, nil
}

// Allow reports whether key may proceed. Store failures degrade open:
// tracking traffic is fire-and-forget, availability wins over precision.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	now := l.now()
	windowSec := int64(l.window / time.Second)
	bucket := now.Unix() / windowSec

	cur, err := l.counter.IncrWithTTL(ctx,
		l.bucketKey(key, bucket), 2*l.window)
	if err != nil {
		l.logger.Warn("rate limit counter unavailable, allowing",
			zap.Error(err), zap.String("key", key))
		return true
	}

	prev, err := l.counter.Get(ctx, l.bucketKey(key, bucket-1))
	if err != nil {
		l.logger.Warn("rate limit counter unavailable, allowing",
			zap.Error(err), zap.String("key", key))
		return true
	}

	elapsed := float64(now.Unix()%windowSec) / float64(windowSec)
	estimated := int64(float64(prev)*(1-elapsed)) + cur

	return estimated <= l.limit
}

func (l *Limiter) bucketKey(key string, bucket int64) string {
	return fmt.Sprintf("ratelimit/%s/%d", key, bucket)
}

// Middleware gates requests by client IP, answering 429 when over limit.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !l.Allow(ctx.Request.Context(), ctx.ClientIP()) {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests",
			})
			return
		}

		ctx.Next()
	}
}
