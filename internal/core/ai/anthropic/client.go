package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"
)

// Client Messages API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// Message 消息結構
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request 表示 API 請求
type Request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// ContentBlock 回應內容區塊
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// UsageInfo 使用量信息
type UsageInfo struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Response Messages API 響應結構
type Response struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      UsageInfo      `json:"usage"`
}

// APIError 表示 API 錯誤響應
type APIError struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient 創建 Messages API 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Anthropic.BaseURL).
		SetTimeout(cfg.Anthropic.Timeout).
		SetHeader("x-api-key", cfg.Anthropic.APIKey).
		SetHeader("anthropic-version", cfg.Anthropic.APIVersion).
		SetHeader("Content-Type", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 以單一 user 訊息呼叫模型，回傳所有 text 區塊串接後的文字
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := &Request{
		Model:     c.config.Anthropic.Model,
		MaxTokens: c.config.Anthropic.MaxTokens,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	common.LogInfo("發送模型請求",
		zap.String("model", req.Model),
		zap.Int("prompt_length", len(prompt)),
	)

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/v1/messages")
	common.LogAICall(prompt, time.Since(start), err, "")

	if err != nil {
		return "", fmt.Errorf("failed to send request to model provider: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		var apiErr APIError
		if jsonErr := json.Unmarshal(resp.Body(), &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("model provider error (status %d): %s", resp.StatusCode(), apiErr.Error.Message)
		}
		return "", fmt.Errorf("model provider error (status %d): %s", resp.StatusCode(), resp.String())
	}

	var response Response
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse model response: %w", err)
	}

	// 串接所有 text 區塊
	var sb strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := sb.String()
	if text == "" {
		return "", fmt.Errorf("empty content in model response")
	}

	common.LogInfo("模型回應成功",
		zap.String("model", req.Model),
		zap.Int("content_length", len(text)),
		zap.Int("output_tokens", response.Usage.OutputTokens),
	)

	return text, nil
}

// Status 探測供應商狀態：打模型清單端點，2xx 視為可用
func (c *Client) Status(ctx context.Context) error {
	if c.config.Anthropic.APIKey == "" {
		return fmt.Errorf("api key not configured")
	}

	resp, err := c.client.R().
		SetContext(ctx).
		Get("/v1/models")
	if err != nil {
		return fmt.Errorf("provider unreachable: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("provider returned status %d", resp.StatusCode())
	}
	return nil
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
