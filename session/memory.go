package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/octabyte/clinic-portal/models"
)

// MemoryStore keeps sessions in process. Sessions are lost on restart,
// which suits a single instance or local development.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*models.Session, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	s := v.(models.Session)
	return &s, nil
}

// Save stores a copy of s and refreshes its expiry.
func (m *MemoryStore) Save(_ context.Context, s *models.Session) error {
	m.cache.Set(s.ID, *s, m.ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}
