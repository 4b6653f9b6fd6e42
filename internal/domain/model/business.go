package model

// Business businessesコレクションのドキュメント（本システムからは読み取り専用）
type Business struct {
	ID           string    `json:"id" firestore:"-"`
	BusinessName string    `json:"businessName" firestore:"businessName"`
	Username     string    `json:"username" firestore:"username"`
	BusinessType string    `json:"businessType" firestore:"businessType"`
	ProfilePic   string    `json:"profilePic" firestore:"profilePic"`
	Location     *Location `json:"location" firestore:"location"`
	PostCount    int       `json:"postCount" firestore:"postCount"`
}

// HasLocation 位置情報が解決可能かどうか
func (b *Business) HasLocation() bool {
	return b.Location != nil && b.Location.IsValid()
}
