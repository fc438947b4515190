package extract

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"recipe-importer/internal/core/cache"
	"recipe-importer/internal/core/jsonld"
	"recipe-importer/internal/core/recipe"
	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"
)

// TextGenerator 文字生成介面，由 Messages API 客戶端實作
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PageFetcher 頁面抓取介面
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Service 食譜擷取服務：抓頁面、結構化資料優先、沒有才退回模型擷取
type Service struct {
	config  *config.Config
	fetcher PageFetcher
	ai      TextGenerator
	cache   cache.Manager
}

// NewService 建立擷取服務
func NewService(cfg *config.Config, fetcher PageFetcher, ai TextGenerator, cacheManager cache.Manager) *Service {
	return &Service{
		config:  cfg,
		fetcher: fetcher,
		ai:      ai,
		cache:   cacheManager,
	}
}

// ParseRecipe 從網址擷取標準化食譜。
// 流程：驗證網址 → 查快取 → 抓頁面 → JSON-LD 擷取 → 沒有結構化資料就走模型擷取。
// JSON-LD 路徑成功且來源在技巧核可清單上時另跑技巧擷取，該步失敗不影響主結果。
func (s *Service) ParseRecipe(ctx context.Context, pageURL string) (*common.Recipe, error) {
	pageURL = strings.TrimSpace(pageURL)
	if err := validateURL(pageURL); err != nil {
		return nil, common.NewError("INVALID_URL", err.Error(), http.StatusBadRequest, err)
	}

	if cached, ok := s.cache.Get(ctx, pageURL); ok {
		return cached, nil
	}

	start := time.Now()
	html, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, common.NewError("FETCH_FAILED", err.Error(), http.StatusBadRequest, err)
	}

	var (
		result *common.Recipe
		path   string
	)
	if node := jsonld.FindRecipe(html); node != nil {
		result, err = recipe.FromJSONLD(node, pageURL)
		if err != nil {
			// 結構化資料壞掉不終止請求，照樣退回模型擷取
			common.LogWarn("結構化資料解析失敗，改走模型擷取",
				zap.String("url", pageURL),
				zap.Error(err),
			)
			result = nil
		} else {
			path = "jsonld"
		}
	}

	if result == nil {
		result, err = s.extractFreeform(ctx, pageURL, html)
		if err != nil {
			return nil, err
		}
		path = "freeform"
	} else {
		// 技巧擷取只在結構化資料路徑上補跑
		s.enrichTechniques(ctx, result, pageURL, html)
	}

	common.LogExtraction("info", "食譜擷取完成",
		zap.String("url", pageURL),
		zap.String("path", path),
		zap.String("recipe_id", result.ID),
		zap.Int("ingredients", len(result.Ingredients)),
		zap.Int("steps", len(result.Steps)),
		zap.Duration("耗時", time.Since(start)),
	)

	// 快取寫入失敗只記 log，不影響回傳
	if err := s.cache.Set(ctx, pageURL, result); err != nil {
		common.LogWarn("快取寫入失敗",
			zap.String("url", pageURL),
			zap.Error(err),
		)
	}
	return result, nil
}

// validateURL 驗證網址格式，只接受 http/https
func validateURL(pageURL string) error {
	if pageURL == "" {
		return common.NewValidationError("url is required")
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return common.NewValidationError("invalid url format")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return common.NewValidationError("url must use http or https")
	}
	if u.Host == "" {
		return common.NewValidationError("url is missing a host")
	}
	return nil
}
