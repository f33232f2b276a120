package cache

import (
	"context"
	"encoding/json"
	"time"

	"universe-webhook-sync/internal/store"
	"universe-webhook-sync/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const snapshotKey = "webhook:snapshot"

// SnapshotCache 讀取端的快照快取。快取失效或 Redis 掛掉都只是 cache miss，
// 讀取端會退回直接打表格儲存。
type SnapshotCache interface {
	Get(ctx context.Context) (*store.Snapshot, bool)
	Set(ctx context.Context, snapshot *store.Snapshot)
	Invalidate(ctx context.Context)
}

type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) SnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

func (c *RedisSnapshotCache) Get(ctx context.Context) (*store.Snapshot, bool) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.WithComponent("cache").Warn("snapshot cache get failed", zap.Error(err))
		}
		return nil, false
	}

	var snapshot store.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logger.WithComponent("cache").Warn("snapshot cache corrupt, dropping", zap.Error(err))
		_ = c.client.Del(ctx, snapshotKey).Err()
		return nil, false
	}
	return &snapshot, true
}

func (c *RedisSnapshotCache) Set(ctx context.Context, snapshot *store.Snapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.WithComponent("cache").Warn("snapshot cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		logger.WithComponent("cache").Warn("snapshot cache set failed", zap.Error(err))
	}
}

func (c *RedisSnapshotCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		logger.WithComponent("cache").Warn("snapshot cache invalidate failed", zap.Error(err))
	}
}

// NoopSnapshotCache 沒接 Redis 時用，全部 miss
type NoopSnapshotCache struct{}

func NewNoopSnapshotCache() SnapshotCache {
	return &NoopSnapshotCache{}
}

func (c *NoopSnapshotCache) Get(ctx context.Context) (*store.Snapshot, bool) { return nil, false }
func (c *NoopSnapshotCache) Set(ctx context.Context, snapshot *store.Snapshot) {}
func (c *NoopSnapshotCache) Invalidate(ctx context.Context)                    {}
