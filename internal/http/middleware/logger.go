package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"district/internal/logger"
)

// Logger logs one structured entry per request once the handler chain has finished.
// Fields: request_id, method, path, route, status, latency_ms, plus trace_id when the
// request is traced. 5xx responses log at error level, 4xx at warn.
func Logger(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := []logger.Field{
			logger.String("request_id", RequestIDFromCtx(c)),
			logger.String("method", c.Method()),
			logger.String("path", c.Path()),
			logger.String("route", c.Route().Path),
			logger.Int("status", status),
			logger.Float64("latency_ms", float64(time.Since(start).Microseconds())/1000),
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
			fields = append(fields, logger.String("trace_id", sc.TraceID().String()))
		}
		if err != nil {
			fields = append(fields, logger.Error(err))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("http_request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
		return err
	}
}
