package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"

	"Thikana-App/internal/domain/model"
	"Thikana-App/internal/domain/repository"
)

const businessesCollection = "businesses"

// FirestoreBusinessRepository Firestoreを使用したビジネスリポジトリ
type FirestoreBusinessRepository struct {
	client *firestore.Client
}

// NewFirestoreBusinessRepository 新しいFirestoreBusinessRepositoryインスタンスを作成
func NewFirestoreBusinessRepository(client *firestore.Client) repository.BusinessRepository {
	return &FirestoreBusinessRepository{client: client}
}

// GetByID 単一ビジネスを取得する
func (r *FirestoreBusinessRepository) GetByID(ctx context.Context, id string) (*model.Business, error) {
	doc, err := r.client.Collection(businessesCollection).Doc(id).Get(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("ビジネス %s が見つかりません", id)
		}
		return nil, fmt.Errorf("ビジネスの取得に失敗しました: %w", err)
	}
	return docToBusiness(doc), nil
}

// GetByIDs IDリストからビジネスをバッチ取得する
// 10件ごとのチャンクに分割してGetAllを発行し、結果をマージする
// チャンク間に順序依存はないため同時実行し、失敗チャンクはスキップする
func (r *FirestoreBusinessRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*model.Business, error) {
	result := make(map[string]*model.Business)
	if len(ids) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(model.MaxChunkConcurrency)

	for _, chunk := range ChunkIDs(UniqueIDs(ids), model.FirestoreBatchLimit) {
		chunk := chunk
		g.Go(func() error {
			refs := make([]*firestore.DocumentRef, len(chunk))
			for i, id := range chunk {
				refs[i] = r.client.Collection(businessesCollection).Doc(id)
			}

			docs, err := r.client.GetAll(gctx, refs)
			if err != nil {
				// 1チャンクの失敗は部分的な結果で継続する
				log.Printf("⚠️ ビジネスのバッチ取得チャンク（%d件）に失敗、スキップ: %v", len(chunk), err)
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			for _, doc := range docs {
				if !doc.Exists() {
					continue
				}
				result[doc.Ref.ID] = docToBusiness(doc)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ビジネスのバッチ取得に失敗しました: %w", err)
	}
	return result, nil
}

// GetAllWithLocation 位置情報を持つ全ビジネスを取得する（フォールバック全走査用）
func (r *FirestoreBusinessRepository) GetAllWithLocation(ctx context.Context) ([]*model.Business, error) {
	iter := r.client.Collection(businessesCollection).Documents(ctx)
	defer iter.Stop()

	var businesses []*model.Business
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ビジネスコレクションの走査に失敗しました: %w", err)
		}
		biz := docToBusiness(doc)
		if biz.HasLocation() {
			businesses = append(businesses, biz)
		}
	}
	return businesses, nil
}

// UpdateLocation ビジネスの位置情報を更新する
func (r *FirestoreBusinessRepository) UpdateLocation(ctx context.Context, id string, location model.Location) error {
	_, err := r.client.Collection(businessesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "location", Value: location},
	})
	if err != nil {
		return fmt.Errorf("ビジネス %s の位置情報更新に失敗しました: %w", id, err)
	}
	return nil
}

// docToBusiness FirestoreドキュメントをBusinessモデルに変換する
// フィールド欠損はゼロ値として扱う（縮退データ条件はエラーにしない）
func docToBusiness(doc *firestore.DocumentSnapshot) *model.Business {
	var biz model.Business
	if err := doc.DataTo(&biz); err != nil {
		log.Printf("⚠️ ビジネス %s のデコードに失敗、部分データで継続: %v", doc.Ref.ID, err)
	}
	biz.ID = doc.Ref.ID
	return &biz
}
