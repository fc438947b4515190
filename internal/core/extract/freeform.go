package extract

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"recipe-importer/internal/core/ai/prompt"
	"recipe-importer/internal/core/recipe"
	"recipe-importer/internal/pkg/common"
)

// rawExcerptLimit 回傳給呼叫端的模型原始回應上限，診斷用
const rawExcerptLimit = 500

// extractFreeform 頁面沒有結構化資料時，把截斷後的 HTML 交給模型擷取食譜。
// 模型回應取第一個 { 到最後一個 } 之間的 JSON；取不出或解析失敗視為請求失敗。
func (s *Service) extractFreeform(ctx context.Context, pageURL, html string) (*common.Recipe, error) {
	common.LogExtraction("info", "頁面無結構化資料，改走模型擷取",
		zap.String("url", pageURL),
		zap.Int("html_length", len(html)),
	)

	promptText, err := prompt.RenderFreeform(prompt.FreeformData{
		URL:  pageURL,
		HTML: common.Truncate(html, s.config.Extract.HTMLPromptLimit),
	})
	if err != nil {
		return nil, common.NewError("MODEL_RESPONSE_ERROR", "failed to build extraction prompt", http.StatusInternalServerError, err)
	}

	raw, err := s.ai.Generate(ctx, promptText)
	if err != nil {
		return nil, common.NewError("MODEL_RESPONSE_ERROR", err.Error(), http.StatusInternalServerError, err)
	}

	jsonText, err := common.ExtractJSONObject(raw)
	if err != nil {
		common.LogError("模型回應中找不到 JSON 物件",
			zap.String("url", pageURL),
			zap.Int("response_length", len(raw)),
		)
		return nil, modelResponseError(raw, err)
	}

	result, err := recipe.FromModelJSON(jsonText, pageURL)
	if err != nil {
		common.LogError("模型回應 JSON 解析失敗",
			zap.String("url", pageURL),
			zap.Error(err),
		)
		return nil, modelResponseError(raw, err)
	}
	return result, nil
}

// modelResponseError 組出模型回應不可解析的錯誤，訊息帶原始回應前段供診斷
func modelResponseError(raw string, err error) *common.CustomError {
	msg := fmt.Sprintf("failed to parse recipe from model response; raw response (truncated): %s",
		common.Truncate(raw, rawExcerptLimit))
	return common.NewError("MODEL_RESPONSE_ERROR", msg, http.StatusInternalServerError, err)
}
