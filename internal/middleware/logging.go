package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/avissapr/taxifleet/internal/logger"
)

// RequestLogger logs every HTTP request with method, path, status, latency,
// and the acting driver when authenticated.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		fields := []logger.Field{
			logger.String("method", c.Method()),
			logger.String("path", c.Path()),
			logger.Int("status", c.Response().StatusCode()),
			logger.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if id, ok := c.Locals("driver_id").(int); ok {
			fields = append(fields, logger.Int("driver_id", id))
		}

		if err != nil {
			fields = append(fields, logger.Error(err))
			log.Warning("request failed", fields...)
			return err
		}

		log.Info("request", fields...)
		return nil
	}
}
