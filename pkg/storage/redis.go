package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/aimingmed/sctracker-console/pkg/redis"
)

type redisStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Touch(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	StorageKey(workspaceID, name string) string
}

// Redis stores one workspace's values under sct:storage:workspace:<id>:<key>.
// Every read slides the key's expiry forward by ttl.
type Redis struct {
	client      redisStore
	workspaceID string
	ttl         time.Duration
}

func NewRedis(client redisStore, workspaceID string, ttl time.Duration) *Redis {
	return &Redis{client: client, workspaceID: workspaceID, ttl: ttl}
}

// RedisFactory scopes a shared client to each workspace.
func RedisFactory(client *redisclient.Client, ttl time.Duration) Factory {
	return func(workspaceID string) Storage {
		return NewRedis(client, workspaceID, ttl)
	}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	full := r.client.StorageKey(r.workspaceID, key)
	v, err := r.client.Get(ctx, full)
	if errors.Is(err, redisclient.ErrNil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := r.client.Touch(ctx, full, r.ttl); err != nil {
		return "", false, fmt.Errorf("touch %s: %w", key, err)
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.client.StorageKey(r.workspaceID, key), value, r.ttl); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.client.StorageKey(r.workspaceID, key)); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
