package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"
)

// RedisCache Redis 後端快取，多副本部署時共用擷取結果
type RedisCache struct {
	client *redis.Client
	config *config.Config
	hits   int64
	misses int64
	errors int64
}

// NewRedisCache 創建 Redis 快取，建立時測試連線
func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("快取管理員已初始化",
		zap.String("後端", "redis"),
		zap.String("位址", cfg.Redis.Addr),
		zap.Duration("存活時間", cfg.Cache.TTL),
	)

	return &RedisCache{
		client: client,
		config: cfg,
	}, nil
}

// Get 查詢快取，未命中回傳 (nil, false)
func (r *RedisCache) Get(ctx context.Context, url string) (*common.Recipe, bool) {
	key := cacheKey(url)

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			atomic.AddInt64(&r.misses, 1)
			common.LogCacheMiss("redis", key)
			return nil, false
		}
		atomic.AddInt64(&r.errors, 1)
		common.LogWarn("Redis 讀取失敗", zap.String("鍵", key), zap.Error(err))
		return nil, false
	}

	var recipe common.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		atomic.AddInt64(&r.errors, 1)
		common.LogWarn("快取條目解析失敗", zap.String("鍵", key), zap.Error(err))
		return nil, false
	}

	atomic.AddInt64(&r.hits, 1)
	common.LogCacheHit("redis", key)
	return &recipe, true
}

// Set 寫入快取，帶設定的 TTL
func (r *RedisCache) Set(ctx context.Context, url string, recipe *common.Recipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	key := cacheKey(url)
	if err := r.client.Set(ctx, key, data, r.config.Cache.TTL).Err(); err != nil {
		atomic.AddInt64(&r.errors, 1)
		return fmt.Errorf("failed to set cache: %w", err)
	}

	common.LogInfo("快取已儲存", zap.String("鍵", key))
	return nil
}

// Stats 回傳統計資訊
func (r *RedisCache) Stats() map[string]interface{} {
	hits := atomic.LoadInt64(&r.hits)
	misses := atomic.LoadInt64(&r.misses)

	total := hits + misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return map[string]interface{}{
		"backend":   "redis",
		"hits":      hits,
		"misses":    misses,
		"errors":    atomic.LoadInt64(&r.errors),
		"hit_ratio": hitRatio,
	}
}

// Close 關閉 Redis 連線
func (r *RedisCache) Close() error {
	return r.client.Close()
}
