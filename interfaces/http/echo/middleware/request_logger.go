package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	otellogger "github.com/octabyte/clinic-portal/otel/logger"
)

// RequestLogger writes one structured line per request and makes sure
// every response carries a request id.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			id := c.Request().Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(RequestIDHeader, id)

			err := next(c)
			if err != nil {
				// Let echo write the error response so the logged status is final.
				c.Error(err)
			}

			req := c.Request()
			fields := []zap.Field{
				zap.String("request_id", id),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("route", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			}

			switch {
			case err != nil:
				otellogger.ErrorCtx(req.Context(), "request failed", err, fields...)
			case c.Response().Status >= 500:
				otellogger.WarnCtx(req.Context(), "request completed", fields...)
			default:
				otellogger.InfoCtx(req.Context(), "request completed", fields...)
			}
			return nil
		}
	}
}
