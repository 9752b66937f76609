package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit  int
	Window time.Duration
	// KeyFunc identifies the caller; defaults to the client IP.
	KeyFunc   func(*gin.Context) string
	KeyPrefix string
	// FailClosed rejects requests when Redis errors instead of falling back to memory.
	FailClosed bool
}

// Atomic increment with TTL on first hit.
// Returns: [current_count, ttl_remaining]
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// RateLimiter counts requests in Redis when a client is configured and in process memory otherwise.
type RateLimiter struct {
	redis *goredis.Client
	store sync.Map
	now   func() time.Time
}

func NewRateLimiter(client *goredis.Client) *RateLimiter {
	return &RateLimiter{redis: client, now: time.Now}
}

// GlobalRateLimitConfig limits every request by client IP.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// ApplyRateLimitConfig limits application submissions per authenticated user.
func ApplyRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:apply:",
		KeyFunc: func(c *gin.Context) string {
			if id := c.GetInt64(string(domain.KeyUserID)); id > 0 {
				return strconv.FormatInt(id, 10)
			}
			return c.ClientIP()
		},
	}
}

// Middleware creates a rate limiting handler with the given config
func (l *RateLimiter) Middleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}

	return func(c *gin.Context) {
		if config.Limit <= 0 {
			c.Next()
			return
		}
		key := config.KeyPrefix + config.KeyFunc(c)

		var count int
		var resetAt time.Time
		var err error
		if l.redis != nil {
			count, resetAt, err = l.checkRedis(c.Request.Context(), key, config)
			if err != nil {
				logger.Log.Warn("rate limit backend unavailable",
					"request_id", c.GetString(response.RequestIDKey),
					"error", err,
				)
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				count, resetAt = l.checkInMemory(key, config)
			}
		} else {
			count, resetAt = l.checkInMemory(key, config)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(resetAt.Sub(l.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logger.Log.Info("rate limit triggered",
				"request_id", c.GetString(response.RequestIDKey),
				"key", key,
				"path", c.FullPath(),
			)
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", gin.H{"kind": "rate_limited"})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}

func (l *RateLimiter) checkRedis(ctx context.Context, key string, config RateLimitConfig) (int, time.Time, error) {
	result, err := rateLimitScript.Run(ctx, l.redis, []string{key}, int(config.Window.Seconds())).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}
	if len(result) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	return int(result[0]), l.now().Add(time.Duration(result[1]) * time.Second), nil
}

func (l *RateLimiter) checkInMemory(key string, config RateLimitConfig) (int, time.Time) {
	now := l.now()
	entryI, _ := l.store.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(config.Window)})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(config.Window)
	}
	entry.count++
	return entry.count, entry.resetAt
}

// RunSweeper calls Sweep every interval until ctx is done.
// The memory store also backs a configured Redis client while it is failing.
func (l *RateLimiter) RunSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// Sweep drops expired in-memory windows.
func (l *RateLimiter) Sweep() {
	now := l.now()
	l.store.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		expired := now.After(entry.resetAt)
		entry.mu.Unlock()
		if expired {
			l.store.Delete(key)
		}
		return true
	})
}
