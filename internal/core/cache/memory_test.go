package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"
)

func memoryTestConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func sampleRecipe(title string) *common.Recipe {
	quantity := 2.0
	return &common.Recipe{
		ID:       "recipe_1700000000000",
		Slug:     "sample",
		Title:    title,
		Servings: 4,
		Course:   []common.Course{common.CourseDinner},
		Ingredients: []common.Ingredient{
			{ID: "1", Name: "chicken broth", Quantity: &quantity, Unit: "cups", Category: common.CategoryProtein},
		},
		Steps: []common.Step{
			{StepNumber: 1, Instruction: "Simmer.", IsActive: true},
		},
	}
}

func TestMemoryCacheSetGet(t *testing.T) {
	m := NewMemoryCache(memoryTestConfig(10, time.Hour))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "https://example.com/soup", sampleRecipe("Test Soup")))

	got, ok := m.Get(ctx, "https://example.com/soup")
	require.True(t, ok)
	assert.Equal(t, "Test Soup", got.Title)
	require.Len(t, got.Ingredients, 1)
	require.NotNil(t, got.Ingredients[0].Quantity)
	assert.Equal(t, 2.0, *got.Ingredients[0].Quantity)

	// 回傳的是反序列化出的新副本，改動不會影響快取內容
	got.Title = "mutated"
	again, ok := m.Get(ctx, "https://example.com/soup")
	require.True(t, ok)
	assert.Equal(t, "Test Soup", again.Title)
}

func TestMemoryCacheMiss(t *testing.T) {
	m := NewMemoryCache(memoryTestConfig(10, time.Hour))
	defer m.Close()

	got, ok := m.Get(context.Background(), "https://example.com/never-stored")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	m := NewMemoryCache(memoryTestConfig(10, 10*time.Millisecond))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "https://example.com/soup", sampleRecipe("Test Soup")))
	time.Sleep(30 * time.Millisecond)

	_, ok := m.Get(ctx, "https://example.com/soup")
	assert.False(t, ok)
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	m := NewMemoryCache(memoryTestConfig(2, time.Hour))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "https://example.com/a", sampleRecipe("A")))
	require.NoError(t, m.Set(ctx, "https://example.com/b", sampleRecipe("B")))

	// 提高 a 的訪問次數，b 成為淘汰對象
	_, ok := m.Get(ctx, "https://example.com/a")
	require.True(t, ok)
	_, ok = m.Get(ctx, "https://example.com/a")
	require.True(t, ok)

	require.NoError(t, m.Set(ctx, "https://example.com/c", sampleRecipe("C")))

	_, ok = m.Get(ctx, "https://example.com/b")
	assert.False(t, ok, "least used entry should be evicted")
	_, ok = m.Get(ctx, "https://example.com/a")
	assert.True(t, ok)
	_, ok = m.Get(ctx, "https://example.com/c")
	assert.True(t, ok)
}

func TestMemoryCacheStats(t *testing.T) {
	m := NewMemoryCache(memoryTestConfig(10, time.Hour))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "https://example.com/soup", sampleRecipe("Test Soup")))
	m.Get(ctx, "https://example.com/soup")
	m.Get(ctx, "https://example.com/missing")

	stats := m.Stats()
	assert.Equal(t, "memory", stats["backend"])
	assert.Equal(t, 1, stats["size"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 0.5, stats["hit_ratio"])
}

func TestNewManagerDisabled(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Enabled: false}}
	mgr, err := NewManager(cfg)
	require.NoError(t, err)
	defer mgr.Close()

	got, ok := mgr.Get(context.Background(), "https://example.com/soup")
	assert.False(t, ok)
	assert.Nil(t, got)

	assert.NoError(t, mgr.Set(context.Background(), "https://example.com/soup", sampleRecipe("X")))
	assert.Equal(t, false, mgr.Stats()["enabled"])
}

func TestNewManagerUnknownBackend(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Enabled: true, Backend: "bolt", MaxSize: 10, TTL: time.Hour, CleanupInterval: time.Minute}}
	_, err := NewManager(cfg)
	assert.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	a := cacheKey("https://example.com/a")
	b := cacheKey("https://example.com/b")

	assert.True(t, strings.HasPrefix(a, "recipe:url:"))
	assert.Equal(t, a, cacheKey("https://example.com/a"))
	assert.NotEqual(t, a, b)
}
