package recipe

import (
	"errors"
	"net/http"

	"recipe-importer/internal/core/extract"
	"recipe-importer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜擷取處理程序
type Handler struct {
	extractService *extract.Service
}

// NewHandler 創建新的食譜擷取處理程序
func NewHandler(extractService *extract.Service) *Handler {
	return &Handler{
		extractService: extractService,
	}
}

// ParseRecipeRequest 擷取請求：只有來源網址一個欄位
type ParseRecipeRequest struct {
	URL string `json:"url" binding:"required"`
}

// HandleParseRecipe 從網址擷取食譜
func (h *Handler) HandleParseRecipe(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理食譜擷取請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req ParseRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	result, err := h.extractService.ParseRecipe(c.Request.Context(), req.URL)
	if err != nil {
		status, msg := errorResponse(err)
		common.LogError("食譜擷取失敗",
			zap.Error(err),
			zap.Int("status", status),
			zap.String("url", req.URL),
			zap.String("request_id", requestID),
		)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	common.LogInfo("食譜擷取成功",
		zap.String("request_id", requestID),
		zap.String("recipe_id", result.ID),
		zap.String("title", result.Title),
	)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipe":  result,
	})
}

// errorResponse 將管線錯誤對應到 HTTP 狀態碼與對外訊息
func errorResponse(err error) (int, string) {
	var customErr *common.CustomError
	if errors.As(err, &customErr) {
		return customErr.Status, customErr.Message
	}
	return http.StatusInternalServerError, "internal server error"
}
