package repository

import (
	"context"

	"Thikana-App/internal/domain/model"
)

// BusinessRepository ビジネスプロフィールへのアクセスを提供する
// プロフィール自体はアイデンティティサブシステムが所有し、ここで書き込むのは位置情報のみ
type BusinessRepository interface {
	// GetByID 単一ビジネスを取得する。存在しない場合はエラー
	GetByID(ctx context.Context, id string) (*model.Business, error)

	// GetByIDs IDリストからビジネスをバッチ取得する（10件ごとのチャンクで実行）
	// 失敗したチャンクはスキップされ、取得できた分だけを返す
	GetByIDs(ctx context.Context, ids []string) (map[string]*model.Business, error)

	// GetAllWithLocation 位置情報を持つ全ビジネスを取得する
	// 空間インデックス未整備時のフォールバック全走査で使用する
	GetAllWithLocation(ctx context.Context) ([]*model.Business, error)

	// UpdateLocation ビジネスの位置情報を更新する
	UpdateLocation(ctx context.Context, id string, location model.Location) error
}
