package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Thikana-App/internal/domain/model"
	"Thikana-App/internal/usecase"
)

// DiscoveryHandler はフォロー候補APIのハンドラー
type DiscoveryHandler struct {
	discoveryUseCase usecase.DiscoveryUseCase
}

// NewDiscoveryHandler は新しいDiscoveryHandlerインスタンスを作成
func NewDiscoveryHandler(discoveryUseCase usecase.DiscoveryUseCase) *DiscoveryHandler {
	return &DiscoveryHandler{discoveryUseCase: discoveryUseCase}
}

// GetWhoToFollow はフォロー候補を返すエンドポイント
// GET /discovery/who-to-follow/:user_id?lat=..&lon=..&limit=..
func (h *DiscoveryHandler) GetWhoToFollow(c *gin.Context) {
	userID := c.Param("user_id")

	loc, err := parseLocationQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	limit := parseLimitQuery(c, model.DefaultSuggestionLimit, 30)

	response, err := h.discoveryUseCase.WhoToFollow(c.Request.Context(), userID, loc, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "フォロー候補の取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
