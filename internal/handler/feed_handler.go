package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Thikana-App/internal/domain/model"
	"Thikana-App/internal/usecase"
)

// FeedHandler はフィードAPIのハンドラー
type FeedHandler struct {
	feedUseCase usecase.FeedUseCase
}

// NewFeedHandler は新しいFeedHandlerインスタンスを作成
func NewFeedHandler(feedUseCase usecase.FeedUseCase) *FeedHandler {
	return &FeedHandler{feedUseCase: feedUseCase}
}

// GetFeed はパーソナライズドフィードを返すエンドポイント
// GET /feed/:user_id?lat=..&lon=..&limit=..
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID := c.Param("user_id")

	loc, err := parseLocationQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	limit := parseLimitQuery(c, model.DefaultFeedLimit, 50)

	response, err := h.feedUseCase.BuildFeed(c.Request.Context(), userID, loc, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "フィードの組み立てに失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// parseLocationQuery はlat/lonクエリパラメータを検証付きで読み取る
func parseLocationQuery(c *gin.Context) (model.Location, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		return model.Location{}, &ValidationError{Field: "lat,lon", Message: "latとlonは必須です"}
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return model.Location{}, &ValidationError{Field: "lat", Message: "latは数値で指定してください"}
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return model.Location{}, &ValidationError{Field: "lon", Message: "lonは数値で指定してください"}
	}

	loc := model.Location{Latitude: lat, Longitude: lon}
	if !loc.IsValid() {
		return model.Location{}, &ValidationError{Field: "lat,lon", Message: "緯度は-90から90、経度は-180から180の範囲で指定してください"}
	}
	return loc, nil
}

// parseLimitQuery はlimitクエリパラメータを読み取り、[1, max]に丸める
// 不正値はデフォルトに縮退する
func parseLimitQuery(c *gin.Context, defaultLimit, max int) int {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return defaultLimit
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return defaultLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}

// ValidationError はバリデーションエラーの詳細
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
