package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-importer/internal/core/cache"
	"recipe-importer/internal/core/status"
	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Provider  *status.ProviderStatus `json:"provider,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	appConfig, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// 構建響應
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   appConfig.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	// 供應商狀態（帶 TTL 快取，不會每次健康檢查都打上游）
	if v, exists := c.Get("status_cache"); exists {
		if statusCache, ok := v.(*status.Cache); ok {
			st := statusCache.Get(c.Request.Context())
			response.Provider = &st
			if !st.Available {
				response.Status = "degraded"
			}
		}
	}

	// 快取統計
	if v, exists := c.Get("cache_manager"); exists {
		if cacheManager, ok := v.(cache.Manager); ok {
			response.Cache = cacheManager.Stats()
		}
	}

	// 記錄請求
	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器。供應商探測失敗時回 503，
// 讓前面的負載平衡器把流量導開
func ReadinessCheck(c *gin.Context) {
	if v, exists := c.Get("status_cache"); exists {
		if statusCache, ok := v.(*status.Cache); ok {
			st := statusCache.Get(c.Request.Context())
			if !st.Available {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "not ready",
					"reason": st.Error,
				})
				return
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
