package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// RequestLogger logs method, path, status and duration for each request.
// It must run after the request ID middleware.
func RequestLogger(log *zap.Logger) fiber.Handler {
	// Ctx strings are only valid during the request, so they are copied
	// before reaching the log core.
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// Let the error handler write the response so the logged status
			// is the one the client sees.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		fields := []zap.Field{
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		}
		if id, ok := c.Locals("requestid").(string); ok {
			fields = append(fields, zap.String("request_id", id))
		}

		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			log.Warn("HTTP request failed", fields...)
		} else {
			log.Info("HTTP request completed", fields...)
		}
		return nil
	}
}
