package echo

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	ctxutil "github.com/octabyte/clinic-portal/utils/context"
)

// Middleware instruments dashboard requests and tags each span with the
// session's role. Requests matching skipper (health checks, static files)
// are not traced.
func Middleware(serviceName string, skipper func(c echo.Context) bool) echo.MiddlewareFunc {
	base := otelecho.Middleware(serviceName)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		traced := base(func(c echo.Context) error {
			err := next(c)

			span := trace.SpanFromContext(c.Request().Context())
			if span.IsRecording() {
				span.SetAttributes(attribute.String("http.route", c.Path()))
				if s := ctxutil.GetSessionFromContext(c.Request().Context()); s != nil {
					span.SetAttributes(
						attribute.String("portal.role", s.Role.String()),
						attribute.Bool("portal.token_present", s.HasToken()),
					)
				}
				if err != nil {
					span.SetAttributes(attribute.String("error.message", err.Error()))
				}
			}

			return err
		})

		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}
			return traced(c)
		}
	}
}
