package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/octabyte/clinic-portal/enums"
	"github.com/octabyte/clinic-portal/models"
)

// Manager hands out sessions for the cookie middleware and persists the
// changes controllers make to them.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Load returns the session stored under id. When id is empty or unknown a
// fresh, unsaved session is returned and created reports true.
func (m *Manager) Load(ctx context.Context, id string) (s *models.Session, created bool, err error) {
	if id != "" {
		s, err = m.store.Get(ctx, id)
		if err == nil {
			return s, false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
	}
	return m.New(), true, nil
}

func (m *Manager) New() *models.Session {
	now := m.now().UTC()
	return &models.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (m *Manager) Save(ctx context.Context, s *models.Session) error {
	s.UpdatedAt = m.now().UTC()
	return m.store.Save(ctx, s)
}

// SignIn records a successful login or role pick.
func (m *Manager) SignIn(ctx context.Context, s *models.Session, role enums.Role, token string) error {
	s.Role = role
	s.Token = token
	return m.Save(ctx, s)
}

// SignOut clears the session's credentials. The id survives so the
// browser's cookie stays usable.
func (m *Manager) SignOut(ctx context.Context, s *models.Session) error {
	s.Clear()
	return m.Save(ctx, s)
}
