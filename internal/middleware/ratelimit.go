package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

var errNoRedis = errors.New("redis client is nil")

// rateLimitBypassed reports whether throttling is off for the running
// environment. Local and test runs are never throttled.
func rateLimitBypassed() bool {
	switch os.Getenv("APP_ENV") {
	case "", "test", "development", "stress":
		return true
	}
	return false
}

// CheckRateLimit counts one hit against resource/id in a fixed window and
// reports whether the caller is still within limit, plus the hits remaining.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, int, error) {
	if rateLimitBypassed() {
		return true, limit, nil
	}
	if rdb == nil {
		return false, 0, errNoRedis
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if cnt == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, 0, err
		}
	}

	remaining := limit - int(cnt)
	if remaining < 0 {
		return false, 0, nil
	}
	return true, remaining, nil
}

// RateLimit returns a Fiber middleware enforcing `limit` requests per `window`
// per client IP. A missing or failing Redis lets the request through; the
// in-process limiter in the server chain still applies.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resource := name
		if resource == "" {
			resource = c.Path()
		}

		allowed, remaining, err := CheckRateLimit(c.UserContext(), rdb, resource, "ip:"+c.IP(), limit, window)
		if err != nil {
			if !errors.Is(err, errNoRedis) {
				Logger.WarnContext(c.UserContext(), "rate limit store unavailable, allowing request",
					slog.String("resource", resource),
					slog.String("error", err.Error()),
				)
			}
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
