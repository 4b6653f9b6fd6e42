package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"Thikana-App/internal/domain/helper"
	"Thikana-App/internal/domain/model"
	"Thikana-App/internal/domain/repository"
	"Thikana-App/internal/domain/service"
)

// FeedUseCase パーソナライズドフィードの組み立てを提供する
type FeedUseCase interface {
	// BuildFeed フォローグラフ・位置・新着の複合スコアで順位付けした投稿リストを返す
	BuildFeed(ctx context.Context, userID string, loc model.Location, limit int) (*model.FeedResponse, error)
}

// feedUseCaseImpl FeedUseCaseの実装
// ステートレスであり、1回の呼び出し = 1回のパイプライン実行。ユーザー間で同時実行可能
type feedUseCaseImpl struct {
	followRepo   repository.FollowRepository
	businessRepo repository.BusinessRepository
	postRepo     repository.PostRepository
	nearbySearch *service.NearbySearchService
	scoring      *service.ScoringService
}

// NewFeedUseCase 新しいFeedUseCaseインスタンスを作成
func NewFeedUseCase(
	followRepo repository.FollowRepository,
	businessRepo repository.BusinessRepository,
	postRepo repository.PostRepository,
	nearbySearch *service.NearbySearchService,
	scoring *service.ScoringService,
) FeedUseCase {
	return &feedUseCaseImpl{
		followRepo:   followRepo,
		businessRepo: businessRepo,
		postRepo:     postRepo,
		nearbySearch: nearbySearch,
		scoring:      scoring,
	}
}

// BuildFeed フィードを組み立てる
//
// Step 1: フォロー先ID取得（必須経路 — 失敗は伝播）
// Step 2: 空間インデックスで近傍ビジネスID取得
// Step 3: 候補 = (フォロー ∪ 近傍) から自分自身を除外。空なら空ページを返す
// Step 4: ビジネス・投稿をバッチ取得
// Step 5: スコアリング → 重複排除 → 降順ソート → limit件に切り詰め
func (u *feedUseCaseImpl) BuildFeed(ctx context.Context, userID string, loc model.Location, limit int) (*model.FeedResponse, error) {
	if limit <= 0 {
		limit = model.DefaultFeedLimit
	}
	log.Printf("🚀 フィード組み立て開始 (user: %s, limit: %d)", userID, limit)

	// Step 1: フォローリスト
	followingIDs, err := u.followRepo.ListFollowingIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("フォローリストの取得に失敗: %w", err)
	}
	followingSet := make(map[string]struct{}, len(followingIDs))
	for _, id := range followingIDs {
		followingSet[id] = struct{}{}
	}

	// Step 2: 近傍ビジネス
	nearbyIDs, err := u.nearbySearch.NearbyBusinessIDs(ctx, loc, model.MaxRadiusKm)
	if err != nil {
		return nil, fmt.Errorf("近傍ビジネスの検索に失敗: %w", err)
	}

	// Step 3: 候補集合（自分自身を除外、重複なし、フォロー→近傍の順）
	candidateSeen := make(map[string]struct{}, len(followingIDs)+len(nearbyIDs))
	candidateIDs := make([]string, 0, len(followingIDs)+len(nearbyIDs))
	for _, id := range append(append([]string{}, followingIDs...), nearbyIDs...) {
		if id == userID {
			continue
		}
		if _, dup := candidateSeen[id]; dup {
			continue
		}
		candidateSeen[id] = struct{}{}
		candidateIDs = append(candidateIDs, id)
	}

	if len(candidateIDs) == 0 {
		log.Printf("✅ 候補ビジネスなし、空のフィードを返却 (user: %s)", userID)
		return &model.FeedResponse{UserID: userID, Count: 0, Posts: []model.FeedItem{}}, nil
	}
	log.Printf("✅ 候補ビジネス %d件 (フォロー: %d, 近傍: %d)", len(candidateIDs), len(followingIDs), len(nearbyIDs))

	// Step 4: バッチ取得
	businesses, err := u.businessRepo.GetByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("ビジネスのバッチ取得に失敗: %w", err)
	}

	posts, err := u.postRepo.ListRecentByBusinessIDs(ctx, candidateIDs, model.PostsPerBusiness)
	if err != nil {
		return nil, fmt.Errorf("投稿のバッチ取得に失敗: %w", err)
	}

	// スコアリング用の位置マップと表示用の距離マップ
	businessLocations := make(map[string]model.Location, len(businesses))
	distances := make(map[string]float64, len(businesses))
	for id, biz := range businesses {
		if biz.HasLocation() {
			businessLocations[id] = *biz.Location
			distances[id] = helper.RoundKm(helper.HaversineKm(loc, *biz.Location))
		}
	}

	// Step 5: スコアリング → 重複排除 → ソート
	seen := make(map[string]struct{}, len(posts))
	items := make([]model.FeedItem, 0, len(posts))

	for _, post := range posts {
		if _, dup := seen[post.ID]; dup {
			continue
		}
		if post.UID == userID {
			// 自分の投稿はフィードに含めない
			continue
		}
		seen[post.ID] = struct{}{}

		score, signals := u.scoring.ScorePost(post, followingSet, loc, businessLocations)
		items = append(items, u.shapeItem(post, businesses[post.UID], score, u.scoring.RecommendationType(signals), distances))
	}

	// スコア降順・同点は入力順を維持（安定ソート）
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if len(items) > limit {
		items = items[:limit]
	}

	log.Printf("🎉 フィード組み立て完了 (user: %s, %d件)", userID, len(items))
	return &model.FeedResponse{UserID: userID, Count: len(items), Posts: items}, nil
}

// shapeItem 投稿＋ビジネス情報をレスポンス形へ整形する
func (u *feedUseCaseImpl) shapeItem(post *model.Post, biz *model.Business, score float64, recommendationType string, distances map[string]float64) model.FeedItem {
	title := post.Title
	if title == "" {
		title = post.Caption
	}
	caption := post.Caption
	if caption == "" {
		caption = post.Title
	}
	mediaURL := post.MediaURL
	if mediaURL == "" {
		mediaURL = post.ImageURL
	}
	imageURL := post.ImageURL
	if imageURL == "" {
		imageURL = post.MediaURL
	}

	createdAt := ""
	if !post.CreatedAt.IsZero() {
		createdAt = post.CreatedAt.UTC().Format(time.RFC3339)
	}

	var distanceKm *float64
	if d, ok := distances[post.UID]; ok {
		dist := d
		distanceKm = &dist
	}

	summary := model.BusinessSummary{}
	authorProfileImage := "/default-avatar.png"
	businessType := ""
	if biz != nil {
		summary = model.BusinessSummary{
			BusinessName: biz.BusinessName,
			Username:     biz.Username,
			BusinessType: biz.BusinessType,
			ProfilePic:   biz.ProfilePic,
		}
		businessType = biz.BusinessType
		if biz.ProfilePic != "" {
			authorProfileImage = biz.ProfilePic
		}
	}

	return model.FeedItem{
		ID:                 post.ID,
		PostID:             post.ID,
		UID:                post.UID,
		Title:              title,
		Caption:            caption,
		Content:            post.Content,
		MediaURL:           mediaURL,
		ImageURL:           imageURL,
		LikeCount:          post.LikeCount,
		CreatedAt:          createdAt,
		Score:              score,
		RecommendationType: recommendationType,
		DistanceKm:         distanceKm,
		AuthorName:         summary.BusinessName,
		AuthorUsername:     summary.Username,
		AuthorProfileImage: authorProfileImage,
		BusinessType:       businessType,
		Business:           summary,
	}
}
