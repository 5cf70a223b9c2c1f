package ratelimit

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Middleware gates a route with the limiter, keyed by client IP. Attempts are
// recorded only after a completed 200 response, so rejected or not-found
// lookups never consume quota. The limiter fails open on journal errors; a
// broken store must not take the reveal flow down with it.
func Middleware(limiter *Limiter, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP()

		decision, err := limiter.Evaluate(c.UserContext(), key)
		if err != nil {
			logger.Warn("rate limit evaluation failed", zap.Error(err))
			return c.Next()
		}
		if decision.Blocked {
			return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{
					"code":           "RATE_LIMITED",
					"message":        "too many lookup attempts, try again later",
					"retry_after_ms": decision.RetryAfter.Milliseconds(),
				},
			})
		}

		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() == http.StatusOK {
			if err := limiter.Record(c.UserContext(), key); err != nil {
				logger.Warn("rate limit record failed", zap.Error(err))
			}
		}
		return nil
	}
}
