package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"career-portal-backend/internal/delivery/http/response"
	"career-portal-backend/internal/domain"
	"career-portal-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis and the in-memory store
	KeyPrefix string
	// Redis returns the shared client or nil; nil uses the in-memory limiter
	Redis func() *goredis.Client
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// localLimiter is the in-memory fallback: one token bucket per key that
// refills Limit tokens per Window.
type localLimiter struct {
	mu       sync.Mutex
	limiters map[string]*localEntry
	limit    rate.Limit
	burst    int
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLocalLimiter(cfg RateLimitConfig) *localLimiter {
	return &localLimiter{
		limiters: make(map[string]*localEntry),
		limit:    rate.Every(cfg.Window / time.Duration(max(cfg.Limit, 1))),
		burst:    max(cfg.Limit, 1),
	}
}

// allow reports whether the request fits and when the next token is due.
func (l *localLimiter) allow(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.limiters[key]
	if !ok {
		e = &localEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now

	r := e.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweep drops buckets that have been idle for longer than idle.
func (l *localLimiter) sweep(now time.Time, idle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.limiters {
		if now.Sub(e.lastSeen) > idle {
			delete(l.limiters, key)
		}
	}
}

// GlobalRateLimitConfig limits every request by client IP.
func GlobalRateLimitConfig(limit int, window time.Duration, rdb func() *goredis.Client) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		Redis:     rdb,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// AIRateLimitConfig limits AI generations per signed-in user. It must run
// after AuthMiddleware.
func AIRateLimitConfig(limit int, window time.Duration, rdb func() *goredis.Client) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ai:",
		Redis:     rdb,
		KeyFunc: func(c *gin.Context) string {
			if cu, ok := domain.CurrentUserFrom(c.Request.Context()); ok {
				return cu.UID
			}
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Uses Redis when available and falls back to in-memory token buckets when not.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	local := newLocalLimiter(config)
	var sweepMu sync.Mutex
	lastSweep := time.Now()

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var client *goredis.Client
		if config.Redis != nil {
			client = config.Redis()
		}

		if client != nil {
			count, resetAt, err := checkRateLimitRedis(c.Request.Context(), client, fullKey, config)
			if err == nil {
				if count > config.Limit {
					reject(c, config, resetAt.Sub(now))
					return
				}
				c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
				c.Header("X-RateLimit-Remaining", strconv.Itoa(max(config.Limit-count, 0)))
				c.Next()
				return
			}
			logger.Log.Warn("rate limit: redis unavailable, using in-memory limiter", "error", err)
		}

		sweepMu.Lock()
		if now.Sub(lastSweep) > 5*time.Minute {
			local.sweep(now, 2*config.Window)
			lastSweep = now
		}
		sweepMu.Unlock()

		ok, retry := local.allow(fullKey, now)
		if !ok {
			reject(c, config, retry)
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Next()
	}
}

func reject(c *gin.Context, config RateLimitConfig, retry time.Duration) {
	retryAfter := int(retry.Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
	c.Header("X-RateLimit-Remaining", "0")
	c.Header("Retry-After", strconv.Itoa(retryAfter))

	logger.Log.Warn("rate limit triggered", "key_prefix", config.KeyPrefix, "ip", c.ClientIP(), "path", c.FullPath())
	response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
	c.Abort()
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	// Parse result [count, ttl]
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}
