package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/esangrahan-backend/pkg/clientip"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// AuthRateLimitWindow is the fixed window for auth attempts.
	AuthRateLimitWindow = 10 * time.Minute
	// AuthRateLimitMaxRequests is the number of auth attempts allowed per window.
	AuthRateLimitMaxRequests = 20
	// AuthBlockDuration is how long a client stays blocked after exceeding the limit.
	AuthBlockDuration = 30 * time.Minute

	RateLimitKeyPrefix = "ratelimit:auth:"
	BlockedKeyPrefix   = "blocked:auth:"
)

// AttemptCounter stores the shared auth attempt counters.
type AttemptCounter interface {
	// Hit increments key, starting a new window when it does not exist.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
	Blocked(ctx context.Context, key string) (bool, error)
	Block(ctx context.Context, key string, d time.Duration) error
}

// RedisCounter keeps the counters in Redis so every instance shares them.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (c *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *RedisCounter) Blocked(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *RedisCounter) Block(ctx context.Context, key string, d time.Duration) error {
	return c.client.Set(ctx, key, "1", d).Err()
}

// AuthRateLimit counts auth attempts per client across instances and blocks
// clients that exceed AuthRateLimitMaxRequests in a window. It fails open:
// when the counter store errors the request goes through.
func AuthRateLimit(counter AttemptCounter, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || !loginPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			client := clientip.LimiterKey(r)
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			blocked, err := counter.Blocked(ctx, BlockedKeyPrefix+client)
			if err != nil {
				log.Warn("rate limit store unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if blocked {
				tooManyRequests(w, "Too many authentication attempts. Please try again later.")
				return
			}

			count, err := counter.Hit(ctx, RateLimitKeyPrefix+client, AuthRateLimitWindow)
			if err != nil {
				log.Warn("rate limit store unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if count > AuthRateLimitMaxRequests {
				if err := counter.Block(ctx, BlockedKeyPrefix+client, AuthBlockDuration); err != nil {
					log.Warn("failed to block client", zap.Error(err))
				}
				log.Info("client blocked after repeated auth attempts", zap.String("client", client))
				tooManyRequests(w, "Too many authentication attempts. Please try again later.")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(AuthRateLimitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(AuthRateLimitMaxRequests-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}
