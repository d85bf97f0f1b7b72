package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/octabyte/clinic-portal/session"
	ctxutil "github.com/octabyte/clinic-portal/utils/context"
)

type SessionConfig struct {
	Manager *session.Manager
	// Secure marks the cookie HTTPS-only.
	Secure bool
	// Skipper bypasses session handling, e.g. for /healthz.
	Skipper func(c echo.Context) bool
}

// SetSessionInContext loads the browser's session, creating one when the
// cookie is missing or stale, and makes it available through
// utils/context and c.Get(RequestSessionKey).
func SetSessionInContext(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper != nil && cfg.Skipper(c) {
				return next(c)
			}

			// Attempt to get the session id from the request header first
			id := c.Request().Header.Get(SessionHeader)

			// If not present, attempt to get it from the cookie
			if id == "" {
				cookie, err := c.Cookie(SessionHeader)
				if err == nil {
					id = cookie.Value
				} else if !errors.Is(err, http.ErrNoCookie) {
					log.Errorf("Error retrieving session cookie: %v", err)
				}
			}

			ctx := c.Request().Context()
			s, created, err := cfg.Manager.Load(ctx, id)
			if err != nil {
				// A store outage must not lock users out of the entry page.
				log.Errorf("Error loading session %s: %v", id, err)
				s, created = cfg.Manager.New(), true
			}

			if created {
				if err := cfg.Manager.Save(ctx, s); err != nil {
					log.Errorf("Error saving new session: %v", err)
				}
				c.SetCookie(&http.Cookie{
					Name:     SessionHeader,
					Value:    s.ID,
					Path:     "/",
					MaxAge:   int(cfg.Manager.TTL().Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(RequestSessionKey, s)
			c.SetRequest(c.Request().WithContext(ctxutil.WithSession(ctx, s)))
			return next(c)
		}
	}
}
