package model

// BusinessSummary フィードアイテムに埋め込むビジネスの表示情報
type BusinessSummary struct {
	BusinessName string `json:"businessName"`
	Username     string `json:"username"`
	BusinessType string `json:"businessType"`
	ProfilePic   string `json:"profilePic"`
}

// FeedItem スコアリング済み投稿のレスポンス表現
// フィールド名はクライアント互換のためAPIレスポンスの形をそのまま維持する
type FeedItem struct {
	ID                 string          `json:"id"`
	PostID             string          `json:"postId"`
	UID                string          `json:"uid"`
	Title              string          `json:"title"`
	Caption            string          `json:"caption"`
	Content            string          `json:"content"`
	MediaURL           string          `json:"mediaUrl"`
	ImageURL           string          `json:"imageUrl"`
	LikeCount          int             `json:"likeCount"`
	CreatedAt          string          `json:"createdAt"` // ISO-8601文字列
	Score              float64         `json:"score"`
	RecommendationType string          `json:"recommendation_type"`
	DistanceKm         *float64        `json:"distance_km"`
	AuthorName         string          `json:"authorName"`
	AuthorUsername     string          `json:"authorUsername"`
	AuthorProfileImage string          `json:"authorProfileImage"`
	BusinessType       string          `json:"businessType"`
	Business           BusinessSummary `json:"business"`
}

// FeedResponse GET /feed/:user_id のレスポンス
type FeedResponse struct {
	UserID string     `json:"user_id"`
	Count  int        `json:"count"`
	Posts  []FeedItem `json:"posts"`
}

// FollowSuggestion Who to Followの1候補
type FollowSuggestion struct {
	ID           string  `json:"id"`
	BusinessName string  `json:"businessName"`
	Username     string  `json:"username"`
	BusinessType string  `json:"businessType"`
	ProfilePic   string  `json:"profilePic"`
	DistanceKm   float64 `json:"distance_km"`
	PostCount    int     `json:"postCount"`
	Score        float64 `json:"score"`
}

// WhoToFollowResponse GET /discovery/who-to-follow/:user_id のレスポンス
type WhoToFollowResponse struct {
	UserID      string             `json:"user_id"`
	Count       int                `json:"count"`
	Suggestions []FollowSuggestion `json:"suggestions"`
}

// UpdateLocationRequest PUT /businesses/:id/location のリクエストボディ
// 0.0が有効値のためポインタでrequired判定する
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}
