package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// ChatRateLimit throttles chat messages per applicant (falling back to the
// client IP) using Redis if available.
func ChatRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 20
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next() // no-op without Redis
		}
		var req struct {
			ApplicantID string `json:"applicant_id"`
		}
		_ = c.BodyParser(&req)
		key := strings.TrimSpace(req.ApplicantID)
		if key == "" {
			key = c.IP()
		}
		cacheKey := "rl:chat:" + key
		cnt, err := cache.Incr(c.UserContext(), cacheKey).Result()
		if err == nil && cnt == 1 {
			cache.Expire(c.UserContext(), cacheKey, time.Minute)
		}
		if err != nil {
			return c.Next() // fail-open on cache errors
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, "too many messages, slow down")
		}
		return c.Next()
	}
}
