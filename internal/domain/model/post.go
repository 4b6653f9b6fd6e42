package model

import "time"

// Post postsコレクションのドキュメント（本システムからは読み取り専用）
// UIDは投稿したビジネスのID
type Post struct {
	ID        string    `json:"id" firestore:"-"`
	UID       string    `json:"uid" firestore:"uid"`
	Title     string    `json:"title" firestore:"title"`
	Caption   string    `json:"caption" firestore:"caption"`
	Content   string    `json:"content" firestore:"content"`
	MediaURL  string    `json:"mediaUrl" firestore:"mediaUrl"`
	ImageURL  string    `json:"imageUrl" firestore:"imageUrl"`
	LikeCount int       `json:"likeCount" firestore:"likeCount"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
