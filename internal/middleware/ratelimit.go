package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimit caps requests per client IP over a fixed window using a
// Redis counter with a TTL set on the first increment. Applied to the
// OTP endpoints so a 4-digit code cannot be brute forced from one host.
func RateLimit(client *redis.Client, name string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.IP())

		count, err := client.Incr(c.Context(), key).Result()
		if err != nil {
			// Redis being down should not take auth down with it.
			return c.Next()
		}

		if count == 1 {
			if err := client.Expire(c.Context(), key, window).Err(); err != nil {
				return c.Next()
			}
		}

		if count > int64(limit) {
			retryAfter, _ := client.TTL(c.Context(), key).Result()
			c.Set("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
			return TooManyRequests("Too many requests, try again later")
		}

		return c.Next()
	}
}
