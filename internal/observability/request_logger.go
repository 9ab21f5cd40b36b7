package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs every request and records it in metrics.
// Route paths are used as metric keys so path parameters do not explode cardinality.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()
		route := c.Route().Path
		metrics.RecordRequest(route, c.Method(), status, latency)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}
		if caller, ok := c.Locals(CallerLogKey).(string); ok && caller != "" {
			fields = append(fields, zap.String("caller", caller))
		}
		logger.Info("request", fields...)
		return err
	}
}

// CallerLogKey is the fiber locals key holding the caller id for request logs.
const CallerLogKey = "log_caller"
