package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/logger"
)

// KeyFunc derives the bucket a request is counted against.
type KeyFunc func(c *gin.Context) string

// Counter increments a fixed-window counter and returns its new value.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter is a fixed-window Counter shared by every server instance.
type RedisCounter struct {
	rdb *redis.Client
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, r.rdb, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// Limiter rejects requests once a bucket exceeds limit hits within window.
type Limiter struct {
	counter Counter
	limit   int
	window  time.Duration
	prefix  string
}

func New(counter Counter, limit int, window time.Duration, prefix string) *Limiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &Limiter{counter: counter, limit: limit, window: window, prefix: prefix}
}

// Allow counts one hit against key and reports whether it is still within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.counter.Incr(ctx, l.prefix+":"+key, l.window)
	if err != nil {
		return false, err
	}
	return count <= int64(l.limit), nil
}

func (l *Limiter) Window() time.Duration {
	return l.window
}

// Middleware lets requests through when the counter is unreachable.
func (l *Limiter) Middleware(key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), key(c))
		if err != nil {
			logger.FromContext(c).Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
			return
		}
		c.Next()
	}
}

// ByClientIP buckets requests by the caller's address.
func ByClientIP(c *gin.Context) string {
	return c.ClientIP()
}
