package recipe

import (
	"net/http"

	"recipe-importer/internal/core/source"

	"github.com/gin-gonic/gin"
)

// HandleListSources 列出核可的食譜來源，前端用來顯示「支援的網站」清單
func (h *Handler) HandleListSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sources": source.Approved(),
	})
}
