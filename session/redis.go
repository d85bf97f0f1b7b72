package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	dbredis "github.com/octabyte/clinic-portal/db/redis"
	"github.com/octabyte/clinic-portal/models"
	"github.com/octabyte/clinic-portal/utils"
)

const keyPrefix = "clinic-portal:session:"

// RedisStore shares sessions between portal instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	raw, err := dbredis.Get(ctx, r.client, keyPrefix+id)
	if errors.Is(err, dbredis.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	s := &models.Session{}
	if err := utils.BytesToStruct([]byte(raw), s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *models.Session) error {
	raw, err := utils.StructToBytes(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := dbredis.Set(ctx, r.client, keyPrefix+s.ID, raw, r.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return dbredis.Del(ctx, r.client, keyPrefix+id)
}
