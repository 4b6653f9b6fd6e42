package repository

import (
	"context"

	"Thikana-App/internal/domain/model"
)

// PostRepository 投稿の読み取りを提供する（読み取り専用）
type PostRepository interface {
	// ListRecentByBusinessIDs 指定ビジネス群の最新投稿を取得する
	// 10件ごとのチャンクに分割し、チャンクごとに createdAt 降順で
	// perBusiness×チャンクサイズ件を上限に取得してマージする
	// 投稿IDで重複排除し、失敗したチャンクはスキップする
	ListRecentByBusinessIDs(ctx context.Context, businessIDs []string, perBusiness int) ([]*model.Post, error)
}
