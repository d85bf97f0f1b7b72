package session

import (
	"context"
	"errors"

	"github.com/octabyte/clinic-portal/models"
)

var ErrNotFound = errors.New("session not found")

// Store persists sessions by id. Implementations must be safe for
// concurrent use; Get returns a copy the caller may modify freely.
type Store interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id string) error
}
