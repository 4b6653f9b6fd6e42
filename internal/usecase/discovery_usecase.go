package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"

	"Thikana-App/internal/domain/helper"
	"Thikana-App/internal/domain/model"
	"Thikana-App/internal/domain/repository"
	"Thikana-App/internal/domain/service"
)

// DiscoveryUseCase フォロー候補のレコメンドを提供する
type DiscoveryUseCase interface {
	// WhoToFollow 未フォローの近傍ビジネスを距離と活動量で順位付けして返す
	WhoToFollow(ctx context.Context, userID string, loc model.Location, limit int) (*model.WhoToFollowResponse, error)
}

// discoveryUseCaseImpl DiscoveryUseCaseの実装
type discoveryUseCaseImpl struct {
	followRepo   repository.FollowRepository
	businessRepo repository.BusinessRepository
	nearbySearch *service.NearbySearchService
	scoring      *service.ScoringService
}

// NewDiscoveryUseCase 新しいDiscoveryUseCaseインスタンスを作成
func NewDiscoveryUseCase(
	followRepo repository.FollowRepository,
	businessRepo repository.BusinessRepository,
	nearbySearch *service.NearbySearchService,
	scoring *service.ScoringService,
) DiscoveryUseCase {
	return &discoveryUseCaseImpl{
		followRepo:   followRepo,
		businessRepo: businessRepo,
		nearbySearch: nearbySearch,
		scoring:      scoring,
	}
}

// WhoToFollow フォロー候補を組み立てる
//
// 候補は近傍検索の結果からフォロー済みと自分自身を除外したもの。
// 位置が解決でき、かつ実距離が半径内のビジネスのみをスコアリング対象とする
// （セル境界由来の偽陽性はここで落ちる）
func (u *discoveryUseCaseImpl) WhoToFollow(ctx context.Context, userID string, loc model.Location, limit int) (*model.WhoToFollowResponse, error) {
	if limit <= 0 {
		limit = model.DefaultSuggestionLimit
	}
	log.Printf("🔍 フォロー候補の探索開始 (user: %s, limit: %d)", userID, limit)

	followingIDs, err := u.followRepo.ListFollowingIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("フォローリストの取得に失敗: %w", err)
	}
	excluded := make(map[string]struct{}, len(followingIDs)+1)
	excluded[userID] = struct{}{}
	for _, id := range followingIDs {
		excluded[id] = struct{}{}
	}

	nearbyIDs, err := u.nearbySearch.NearbyBusinessIDs(ctx, loc, model.MaxRadiusKm)
	if err != nil {
		return nil, fmt.Errorf("近傍ビジネスの検索に失敗: %w", err)
	}

	candidateIDs := make([]string, 0, len(nearbyIDs))
	for _, id := range nearbyIDs {
		if _, skip := excluded[id]; !skip {
			candidateIDs = append(candidateIDs, id)
		}
	}

	if len(candidateIDs) == 0 {
		log.Printf("✅ フォロー候補なし (user: %s)", userID)
		return &model.WhoToFollowResponse{UserID: userID, Count: 0, Suggestions: []model.FollowSuggestion{}}, nil
	}

	businesses, err := u.businessRepo.GetByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("ビジネスのバッチ取得に失敗: %w", err)
	}

	suggestions := make([]model.FollowSuggestion, 0, len(businesses))
	for _, id := range candidateIDs {
		biz, ok := businesses[id]
		if !ok || !biz.HasLocation() {
			continue
		}
		distanceKm := helper.RoundKm(helper.HaversineKm(loc, *biz.Location))
		if distanceKm > model.MaxRadiusKm {
			continue
		}
		score := u.scoring.ScoreBusinessToFollow(biz, distanceKm)
		suggestions = append(suggestions, model.FollowSuggestion{
			ID:           biz.ID,
			BusinessName: biz.BusinessName,
			Username:     biz.Username,
			BusinessType: biz.BusinessType,
			ProfilePic:   biz.ProfilePic,
			DistanceKm:   distanceKm,
			PostCount:    biz.PostCount,
			Score:        score,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	log.Printf("✅ フォロー候補 %d件を返却 (user: %s)", len(suggestions), userID)
	return &model.WhoToFollowResponse{UserID: userID, Count: len(suggestions), Suggestions: suggestions}, nil
}
