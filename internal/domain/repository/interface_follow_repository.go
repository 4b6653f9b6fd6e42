package repository

import "context"

// FollowRepository フォローグラフの読み取りを提供する
type FollowRepository interface {
	// ListFollowingIDs ユーザーがフォローしているビジネスIDの一覧を返す
	// users/{userId}/following サブコレクションのドキュメントIDがフォロー先ID
	ListFollowingIDs(ctx context.Context, userID string) ([]string, error)
}
