package repository

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"

	"Thikana-App/internal/domain/repository"
)

const locationIndexCollection = "location_index"

// locationIndexDoc location_index/{cell} ドキュメントの形
type locationIndexDoc struct {
	BusinessIDs []string `firestore:"business_ids"`
}

// FirestoreLocationIndexRepository Firestoreを使用した空間インデックスリポジトリ
// ドキュメントID = geohashセル、値 = そのセル内のビジネスID配列
type FirestoreLocationIndexRepository struct {
	client *firestore.Client
}

// NewFirestoreLocationIndexRepository 新しいFirestoreLocationIndexRepositoryインスタンスを作成
func NewFirestoreLocationIndexRepository(client *firestore.Client) repository.LocationIndexRepository {
	return &FirestoreLocationIndexRepository{client: client}
}

// GetCell セルに属するビジネスIDの一覧を返す
// セルのドキュメントが未作成の場合は空を返す（インデックス欠損は縮退条件でありエラーではない）
func (r *FirestoreLocationIndexRepository) GetCell(ctx context.Context, cell string) ([]string, error) {
	doc, err := r.client.Collection(locationIndexCollection).Doc(cell).Get(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "not found") {
			return nil, nil
		}
		return nil, fmt.Errorf("location_indexセル %s の取得に失敗しました: %w", cell, err)
	}

	var data locationIndexDoc
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("location_indexセル %s の変換に失敗しました: %w", cell, err)
	}
	return data.BusinessIDs, nil
}

// AddBusinessToCell セルのbusiness_ids配列へIDを追加する
// ArrayUnion＋MergeAllなのでセル未作成でも安全で、重複追加にもならない
func (r *FirestoreLocationIndexRepository) AddBusinessToCell(ctx context.Context, cell, businessID string) error {
	_, err := r.client.Collection(locationIndexCollection).Doc(cell).Set(ctx, map[string]interface{}{
		"business_ids": firestore.ArrayUnion(businessID),
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("location_indexセル %s への追加に失敗しました: %w", cell, err)
	}
	return nil
}

// RemoveBusinessFromCell セルのbusiness_ids配列からIDを除去する
func (r *FirestoreLocationIndexRepository) RemoveBusinessFromCell(ctx context.Context, cell, businessID string) error {
	_, err := r.client.Collection(locationIndexCollection).Doc(cell).Set(ctx, map[string]interface{}{
		"business_ids": firestore.ArrayRemove(businessID),
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("location_indexセル %s からの除去に失敗しました: %w", cell, err)
	}
	return nil
}
