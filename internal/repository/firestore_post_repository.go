package repository

import (
	"context"
	"fmt"
	"log"
	"sync"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"

	"Thikana-App/internal/domain/model"
	"Thikana-App/internal/domain/repository"
)

const postsCollection = "posts"

// FirestorePostRepository Firestoreを使用した投稿リポジトリ
type FirestorePostRepository struct {
	client *firestore.Client
}

// NewFirestorePostRepository 新しいFirestorePostRepositoryインスタンスを作成
func NewFirestorePostRepository(client *firestore.Client) repository.PostRepository {
	return &FirestorePostRepository{client: client}
}

// ListRecentByBusinessIDs 指定ビジネス群の最新投稿を取得する
//
// Firestoreの'in'クエリは10件までのため、IDを10件ごとのチャンクに分割し
// チャンクごとに createdAt 降順・perBusiness×チャンクサイズ件上限で取得する。
// チャンクの完了順に依存しないよう、マージ後に投稿IDで重複排除する。
// 1チャンクの失敗は再現率を下げるだけで、残りの結果は正しく返す。
func (r *FirestorePostRepository) ListRecentByBusinessIDs(ctx context.Context, businessIDs []string, perBusiness int) ([]*model.Post, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	if perBusiness <= 0 {
		perBusiness = model.PostsPerBusiness
	}

	var (
		mu    sync.Mutex
		posts []*model.Post
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(model.MaxChunkConcurrency)

	for _, chunk := range ChunkIDs(UniqueIDs(businessIDs), model.FirestoreBatchLimit) {
		chunk := chunk
		g.Go(func() error {
			query := r.client.Collection(postsCollection).
				Where("uid", "in", chunk).
				OrderBy("createdAt", firestore.Desc).
				Limit(perBusiness * len(chunk))

			iter := query.Documents(gctx)
			defer iter.Stop()

			var chunkPosts []*model.Post
			for {
				doc, err := iter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Printf("⚠️ 投稿のチャンククエリ（%d件）に失敗、スキップ: %v", len(chunk), err)
					return nil
				}
				chunkPosts = append(chunkPosts, docToPost(doc))
			}

			mu.Lock()
			posts = append(posts, chunkPosts...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("投稿のバッチ取得に失敗しました: %w", err)
	}

	return DedupePosts(posts), nil
}

// docToPost Firestoreドキュメントを Post モデルに変換する
// createdAtが欠損・不正な場合はゼロ値のままにする（新着シグナル0として扱われる）
func docToPost(doc *firestore.DocumentSnapshot) *model.Post {
	var post model.Post
	if err := doc.DataTo(&post); err != nil {
		log.Printf("⚠️ 投稿 %s のデコードに失敗、部分データで継続: %v", doc.Ref.ID, err)
	}
	post.ID = doc.Ref.ID
	return &post
}
