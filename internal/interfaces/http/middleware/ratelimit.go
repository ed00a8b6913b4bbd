package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"z-comp-ai-api/internal/interfaces/http/dto"
	apperrors "z-comp-ai-api/pkg/errors"
	"z-comp-ai-api/pkg/logger"
	"z-comp-ai-api/pkg/metrics"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute 每个客户端每分钟请求数
	RequestsPerMinute int
	// Burst 突发容量，仅进程内限流器使用
	Burst int
}

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	BuildRateLimitKey(clientID, endpoint string) string
}

// RateLimit 限流中间件，按客户端 IP 与路由模板计数
func RateLimit(cfg RateLimitConfig, limiter RateLimiter) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 20
	}

	return func(c *gin.Context) {
		route := routeLabel(c)
		key := limiter.BuildRateLimitKey(c.ClientIP(), route)

		allowed, err := limiter.Allow(c.Request.Context(), key, cfg.RequestsPerMinute, time.Minute)
		if err != nil {
			// 限流器故障时放行
			logger.Warn(c.Request.Context(), "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}
		if !allowed {
			metrics.RateLimitedTotal.WithLabelValues(route).Inc()
			dto.AppError(c, apperrors.ErrTooManyRequests)
			c.Abort()
			return
		}

		c.Next()
	}
}

// LocalRateLimiter 进程内令牌桶限流器，未配置 Redis 时使用
type LocalRateLimiter struct {
	burst    int
	limiters *cache.Cache
}

// NewLocalRateLimiter 创建进程内限流器；burst <= 0 时等于每窗口配额
func NewLocalRateLimiter(burst int) *LocalRateLimiter {
	return &LocalRateLimiter{
		burst:    burst,
		limiters: cache.New(10*time.Minute, 5*time.Minute),
	}
}

// Allow 每个键一个令牌桶，空闲十分钟后回收
func (l *LocalRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	if v, ok := l.limiters.Get(key); ok {
		l.limiters.SetDefault(key, v)
		return v.(*rate.Limiter).Allow(), nil
	}

	burst := l.burst
	if burst <= 0 {
		burst = limit
	}
	lim := rate.NewLimiter(rate.Limit(float64(limit)/window.Seconds()), burst)
	if err := l.limiters.Add(key, lim, cache.DefaultExpiration); err != nil {
		// 并发创建时以先写入者为准
		if v, ok := l.limiters.Get(key); ok {
			lim = v.(*rate.Limiter)
		}
	}
	return lim.Allow(), nil
}

// BuildRateLimitKey 构建限流键
func (l *LocalRateLimiter) BuildRateLimitKey(clientID, endpoint string) string {
	return "ratelimit:" + clientID + ":" + endpoint
}
