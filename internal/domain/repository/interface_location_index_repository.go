package repository

import "context"

// LocationIndexRepository geohashセル→ビジネスID集合の空間インデックスを提供する
// 読み取りはセル単位のポイントルックアップのみで、付け替えは位置更新時に行う
type LocationIndexRepository interface {
	// GetCell セルに属するビジネスIDの一覧を返す
	// セルのドキュメントが存在しない場合は空を返す（エラーではない）
	GetCell(ctx context.Context, cell string) ([]string, error)

	// AddBusinessToCell セルのbusiness_ids配列へIDを追加する（ArrayUnion）
	AddBusinessToCell(ctx context.Context, cell, businessID string) error

	// RemoveBusinessFromCell セルのbusiness_ids配列からIDを除去する（ArrayRemove）
	RemoveBusinessFromCell(ctx context.Context, cell, businessID string) error
}
