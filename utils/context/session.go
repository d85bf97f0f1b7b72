package context

import (
	"context"

	"github.com/octabyte/clinic-portal/models"
)

type sessionKey struct{}

func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// GetSessionFromContext returns the request's session, or nil when the
// session middleware did not run.
func GetSessionFromContext(ctx context.Context) *models.Session {
	s, _ := ctx.Value(sessionKey{}).(*models.Session)
	return s
}
