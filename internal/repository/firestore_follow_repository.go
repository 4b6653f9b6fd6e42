package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"Thikana-App/internal/domain/repository"
)

const (
	usersCollection        = "users"
	followingSubcollection = "following"
)

// FirestoreFollowRepository Firestoreを使用したフォローグラフリポジトリ
// users/{userId}/following サブコレクションのドキュメントIDがフォロー先ビジネスID
type FirestoreFollowRepository struct {
	client *firestore.Client
}

// NewFirestoreFollowRepository 新しいFirestoreFollowRepositoryインスタンスを作成
func NewFirestoreFollowRepository(client *firestore.Client) repository.FollowRepository {
	return &FirestoreFollowRepository{client: client}
}

// ListFollowingIDs ユーザーがフォローしているビジネスIDの一覧を返す
// フォローリストは必須経路のため、ここでの失敗は呼び出し元へ伝播する
func (r *FirestoreFollowRepository) ListFollowingIDs(ctx context.Context, userID string) ([]string, error) {
	iter := r.client.Collection(usersCollection).Doc(userID).Collection(followingSubcollection).Documents(ctx)
	defer iter.Stop()

	var ids []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("フォローリストの取得に失敗しました: %w", err)
		}
		ids = append(ids, doc.Ref.ID)
	}
	return ids, nil
}
