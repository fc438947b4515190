package extract

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"

	"recipe-importer/internal/core/ai/prompt"
	"recipe-importer/internal/core/source"
	"recipe-importer/internal/pkg/common"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// looseTechniques 模型技巧回應的鬆散外形，過濾後才轉成正式型別
type looseTechniques struct {
	Techniques []struct {
		Title              string   `json:"title"`
		Category           string   `json:"category"`
		Description        string   `json:"description"`
		WhyItWorks         string   `json:"whyItWorks"`
		CommonMistakes     []string `json:"commonMistakes"`
		KeyTips            []string `json:"keyTips"`
		RelatedIngredients []string `json:"relatedIngredients"`
	} `json:"techniques"`
}

// enrichTechniques 對技巧核可來源補跑技巧擷取。
// 加值性質：任何失敗只記 log，絕不影響主要擷取結果。
func (s *Service) enrichTechniques(ctx context.Context, r *common.Recipe, pageURL, html string) {
	if !s.config.Extract.TechniqueEnabled {
		return
	}
	u, err := url.Parse(pageURL)
	if err != nil || !source.IsTechniqueApproved(u.Hostname()) {
		return
	}

	techniques, err := s.extractTechniques(ctx, r.Title, pageURL, html)
	if err != nil {
		common.LogWarn("技巧擷取失敗，略過",
			zap.String("url", pageURL),
			zap.Error(err),
		)
		return
	}
	// 沒擷取到任何技巧時欄位整個省略，不輸出空陣列
	if len(techniques) > 0 {
		r.ExtractedTechniques = techniques
	}
}

// extractTechniques 把頁面純文字交給模型，擷取文中明確描述的烹飪技巧
func (s *Service) extractTechniques(ctx context.Context, title, pageURL, html string) ([]common.Technique, error) {
	text := pageText(html)
	if text == "" {
		return nil, fmt.Errorf("no text content in page")
	}

	promptText, err := prompt.RenderTechnique(prompt.TechniqueData{
		Title:      title,
		URL:        pageURL,
		Text:       common.Truncate(text, s.config.Extract.TechniqueTextLimit),
		Categories: common.TechniqueCategories,
	})
	if err != nil {
		return nil, err
	}

	raw, err := s.ai.Generate(ctx, promptText)
	if err != nil {
		return nil, err
	}

	jsonText, err := common.ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var loose looseTechniques
	if err := common.ParseJSON(jsonText, &loose); err != nil {
		return nil, fmt.Errorf("invalid techniques JSON: %w", err)
	}

	var techniques []common.Technique
	for _, t := range loose.Techniques {
		if strings.TrimSpace(t.Title) == "" {
			continue
		}
		// 分類不在固定清單內的條目整筆丟棄
		if !common.IsValidTechniqueCategory(common.TechniqueCategory(t.Category)) {
			common.LogDebug("忽略未知技巧分類",
				zap.String("category", t.Category),
				zap.String("title", t.Title),
			)
			continue
		}
		techniques = append(techniques, common.Technique{
			Title:              strings.TrimSpace(t.Title),
			Category:           common.TechniqueCategory(t.Category),
			Description:        t.Description,
			WhyItWorks:         t.WhyItWorks,
			CommonMistakes:     t.CommonMistakes,
			KeyTips:            t.KeyTips,
			RelatedIngredients: t.RelatedIngredients,
		})
	}
	return techniques, nil
}

// pageText 將 HTML 轉成純文字：readability 取正文，失敗退回 goquery
// 去除 script/style/noscript 後取全文，最後壓平連續空白
func pageText(html string) string {
	if article, err := readability.FromReader(strings.NewReader(html), nil); err == nil {
		if t := collapseWhitespace(article.TextContent); t != "" {
			return t
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
