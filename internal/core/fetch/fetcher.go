package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"
)

// Fetcher 食譜網頁抓取器
type Fetcher struct {
	config *config.Config
	client *resty.Client
}

// NewFetcher 創建網頁抓取器。
// 帶有描述性 User-Agent 與瀏覽器式 Accept 標頭，避免被基本的爬蟲阻擋規則擋下。
func NewFetcher(cfg *config.Config) *Fetcher {
	client := resty.New().
		SetTimeout(cfg.Fetch.Timeout).
		SetHeader("User-Agent", cfg.Fetch.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.9")

	return &Fetcher{
		config: cfg,
		client: client,
	}
}

// Fetch 抓取網頁 HTML。非 2xx 狀態或空內容一律視為錯誤，不重試。
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode())
	}

	html := resp.String()
	if strings.TrimSpace(html) == "" {
		return "", fmt.Errorf("page returned empty body")
	}

	// 超過上限截斷而非報錯，後段解析對不完整的 HTML 有容忍度
	if int64(len(html)) > f.config.Fetch.MaxHTMLBytes {
		common.LogWarn("網頁內容超過上限，截斷處理",
			zap.String("url", pageURL),
			zap.Int("size", len(html)),
			zap.Int64("limit", f.config.Fetch.MaxHTMLBytes),
		)
		html = html[:f.config.Fetch.MaxHTMLBytes]
	}

	common.LogDebug("網頁抓取完成",
		zap.String("url", pageURL),
		zap.Int("html_length", len(html)),
	)

	return html, nil
}
