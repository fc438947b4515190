package status

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"recipe-importer/internal/pkg/common"
)

// ProviderStatus 模型供應商狀態快照
type ProviderStatus struct {
	Available bool      `json:"available"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// CheckFunc 實際的狀態探測函式
type CheckFunc func(ctx context.Context) error

// Cache 帶 TTL 的供應商狀態快取。
// TTL 由建構時注入，快照過期才重新探測；鎖同時擋住併發探測，
// 同一時間最多一個探測在途。
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	check   CheckFunc
	current *ProviderStatus
}

// NewCache 創建狀態快取
func NewCache(ttl time.Duration, check CheckFunc) *Cache {
	return &Cache{
		ttl:   ttl,
		check: check,
	}
}

// Get 回傳狀態快照，快照過期時重新探測一次
func (c *Cache) Get(ctx context.Context) ProviderStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && time.Since(c.current.CheckedAt) < c.ttl {
		return *c.current
	}

	st := ProviderStatus{
		Available: true,
		CheckedAt: time.Now(),
	}
	if err := c.check(ctx); err != nil {
		st.Available = false
		st.Error = err.Error()
		common.LogWarn("供應商狀態探測失敗", zap.Error(err))
	}

	c.current = &st
	return st
}

// Invalidate 使快照立即失效，下次 Get 會重新探測
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}
