package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Thikana-App/internal/domain/model"
	"Thikana-App/internal/usecase"
)

// BusinessLocationHandler はビジネス位置情報APIのハンドラー
type BusinessLocationHandler struct {
	locationUseCase usecase.LocationUseCase
}

// NewBusinessLocationHandler は新しいBusinessLocationHandlerインスタンスを作成
func NewBusinessLocationHandler(locationUseCase usecase.LocationUseCase) *BusinessLocationHandler {
	return &BusinessLocationHandler{locationUseCase: locationUseCase}
}

// PutBusinessLocation はビジネスの位置情報を更新するエンドポイント
// PUT /businesses/:id/location
func (h *BusinessLocationHandler) PutBusinessLocation(c *gin.Context) {
	businessID := c.Param("id")

	var req model.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	loc := model.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if !loc.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": "緯度は-90から90、経度は-180から180の範囲で指定してください",
		})
		return
	}

	if err := h.locationUseCase.UpdateBusinessLocation(c.Request.Context(), businessID, loc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "位置情報の更新に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
