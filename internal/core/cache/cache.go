package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"
)

// Manager 食譜快取介面，以來源 URL 為鍵。
// 快取失敗只影響效能不影響正確性，呼叫端記錄後繼續執行。
type Manager interface {
	// Get 查詢快取，未命中回傳 (nil, false)
	Get(ctx context.Context, url string) (*common.Recipe, bool)
	// Set 寫入快取
	Set(ctx context.Context, url string, recipe *common.Recipe) error
	// Stats 回傳統計資訊
	Stats() map[string]interface{}
	// Close 關閉快取
	Close() error
}

// NewManager 依設定建立快取。
// 停用時回傳 no-op 實作而不是 nil，呼叫端不需要另外判空。
func NewManager(cfg *config.Config) (Manager, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("快取已停用")
		return noopManager{}, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisCache(cfg)
	case "memory":
		return NewMemoryCache(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

// cacheKey 以來源 URL 的 SHA-256 產生快取鍵
func cacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("recipe:url:%s", hex.EncodeToString(hash[:]))
}

// noopManager 停用快取時的替身
type noopManager struct{}

func (noopManager) Get(ctx context.Context, url string) (*common.Recipe, bool) { return nil, false }
func (noopManager) Set(ctx context.Context, url string, recipe *common.Recipe) error {
	return nil
}
func (noopManager) Stats() map[string]interface{} {
	return map[string]interface{}{"enabled": false}
}
func (noopManager) Close() error { return nil }
