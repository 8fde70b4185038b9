// Package cache implements the coarse project-listing cache on Redis. It
// serves the last known-good listing instantly while a live fetch
// revalidates in the background.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerflow/practice-sdk/pkg/composables"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

type snapshotPayload struct {
	Projects []filter.Project `json:"projects"`
	CachedAt time.Time        `json:"cachedAt"`
}

func (s *RedisSnapshotStore) redisKey(ctx context.Context, key string) (string, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return "", errors.Wrap(err, "snapshot key requires a tenant")
	}
	return "snapshot:" + tenantID.String() + ":" + key, nil
}

func (s *RedisSnapshotStore) Read(ctx context.Context, key string) (viewstate.Snapshot, bool, error) {
	rkey, err := s.redisKey(ctx, key)
	if err != nil {
		return viewstate.Snapshot{}, false, err
	}
	raw, err := s.client.Get(ctx, rkey).Bytes()
	if errors.Is(err, redis.Nil) {
		return viewstate.Snapshot{}, false, nil
	}
	if err != nil {
		return viewstate.Snapshot{}, false, errors.Wrap(err, "failed to read snapshot")
	}
	var payload snapshotPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return viewstate.Snapshot{}, false, errors.Wrap(err, "failed to decode snapshot")
	}
	return viewstate.Snapshot{
		Projects: payload.Projects,
		CachedAt: payload.CachedAt,
		Stale:    time.Since(payload.CachedAt) > s.ttl/2,
	}, true, nil
}

func (s *RedisSnapshotStore) Write(ctx context.Context, key string, projects []filter.Project) error {
	rkey, err := s.redisKey(ctx, key)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(snapshotPayload{Projects: projects, CachedAt: time.Now()})
	if err != nil {
		return errors.Wrap(err, "failed to encode snapshot")
	}
	if err := s.client.Set(ctx, rkey, raw, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to write snapshot")
	}
	return nil
}
