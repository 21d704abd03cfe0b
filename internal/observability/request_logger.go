package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs every request and feeds the HTTP metrics. Register it
// ahead of the error middleware so the recorded status is the rendered one.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		metrics.RecordRequest(path, c.Method(), status, latency)

		logger.Info("http request",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.String("route", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.IP()))
		return err
	}
}
