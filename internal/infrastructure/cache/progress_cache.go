package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/progress"
)

func ProgressKey(userID uuid.UUID) string {
	return "progress:" + userID.String()
}

// MemoryProgressCache хранит прогресс в памяти процесса.
type MemoryProgressCache struct {
	cache *TTLCache[progress.Progress]
	ttl   time.Duration
}

func NewMemoryProgressCache(ttl time.Duration) *MemoryProgressCache {
	return &MemoryProgressCache{cache: NewTTLCache[progress.Progress](), ttl: ttl}
}

// Run запускает очистку просроченных записей до отмены ctx.
func (c *MemoryProgressCache) Run(ctx context.Context) {
	c.cache.RunCleanup(ctx, time.Minute)
}

func (c *MemoryProgressCache) Get(_ context.Context, userID uuid.UUID) (*progress.Progress, bool) {
	p, ok := c.cache.Get(ProgressKey(userID))
	if !ok {
		return nil, false
	}
	return &p, true
}

func (c *MemoryProgressCache) Set(_ context.Context, p *progress.Progress) {
	c.cache.Set(ProgressKey(p.UserID), *p, c.ttl)
}

func (c *MemoryProgressCache) Invalidate(_ context.Context, userIDs ...uuid.UUID) {
	for _, id := range userIDs {
		c.cache.Delete(ProgressKey(id))
	}
}

// RedisProgressCache хранит прогресс в Redis в JSON. Ошибки Redis логируются
// и трактуются как промах кэша.
type RedisProgressCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProgressCache(client *redis.Client, ttl time.Duration) *RedisProgressCache {
	return &RedisProgressCache{client: client, ttl: ttl}
}

func (c *RedisProgressCache) Get(ctx context.Context, userID uuid.UUID) (*progress.Progress, bool) {
	raw, err := c.client.Get(ctx, ProgressKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.WithFields(logrus.Fields{"user_id": userID, "error": err}).Warn("cache: redis get failed")
		}
		return nil, false
	}

	var p progress.Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		logger.Log.WithFields(logrus.Fields{"user_id": userID, "error": err}).Warn("cache: corrupted progress entry")
		return nil, false
	}
	return &p, true
}

func (c *RedisProgressCache) Set(ctx context.Context, p *progress.Progress) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, ProgressKey(p.UserID), raw, c.ttl).Err(); err != nil {
		logger.Log.WithFields(logrus.Fields{"user_id": p.UserID, "error": err}).Warn("cache: redis set failed")
	}
}

func (c *RedisProgressCache) Invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	if len(userIDs) == 0 {
		return
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = ProgressKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Log.WithFields(logrus.Fields{"keys": keys, "error": err}).Warn("cache: redis del failed")
	}
}
