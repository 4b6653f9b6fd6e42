package service

import (
	"time"

	"Thikana-App/internal/domain/helper"
	"Thikana-App/internal/domain/model"
)

// ScoringService フィードとWho to Followの複合スコアを計算する
// 純粋関数のみ — DBアクセスなし、I/Oなし、副作用なし
// 現在時刻はテスト可能性のため注入する
type ScoringService struct {
	now func() time.Time
}

// NewScoringService 新しいScoringServiceインスタンスを作成
func NewScoringService(now func() time.Time) *ScoringService {
	if now == nil {
		now = time.Now
	}
	return &ScoringService{now: now}
}

// PostSignals 投稿スコアの内訳（各シグナルは[0,1]）
type PostSignals struct {
	Following float64
	Location  float64
	Recency   float64
}

// ScorePost 投稿1件のスコアを計算する
// score = 0.55×フォロー + 0.35×位置 + 0.10×新着（小数第4位へ丸め）
// 位置情報が解決できない場合は位置シグナル0、タイムスタンプ不明は新着シグナル0
func (s *ScoringService) ScorePost(post *model.Post, followingSet map[string]struct{}, userLoc model.Location, businessLocations map[string]model.Location) (float64, PostSignals) {
	var signals PostSignals

	if _, ok := followingSet[post.UID]; ok {
		signals.Following = 1.0
	}

	if bizLoc, ok := businessLocations[post.UID]; ok {
		signals.Location = LocationSignal(helper.HaversineKm(userLoc, bizLoc))
	}

	signals.Recency = s.recencySignal(post.CreatedAt)

	score := signals.Following*model.PostWeightFollowing +
		signals.Location*model.PostWeightLocation +
		signals.Recency*model.PostWeightRecency

	return helper.RoundScore(score), signals
}

// RecommendationType フォローシグナルから推薦種別を返す
func (s *ScoringService) RecommendationType(signals PostSignals) string {
	if signals.Following == 1.0 {
		return model.RecommendationFollowed
	}
	return model.RecommendationNearby
}

// ScoreBusinessToFollow Who to Follow候補1件のスコアを計算する
// score = 0.70×位置 + 0.30×活動量（postCountを上限20で正規化）
func (s *ScoringService) ScoreBusinessToFollow(business *model.Business, distanceKm float64) float64 {
	locationSignal := LocationSignal(distanceKm)

	postCount := business.PostCount
	if postCount < 0 {
		postCount = 0
	}
	if postCount > model.MaxPostCount {
		postCount = model.MaxPostCount
	}
	activitySignal := float64(postCount) / float64(model.MaxPostCount)

	score := locationSignal*model.FollowWeightLocation +
		activitySignal*model.FollowWeightActivity

	return helper.RoundScore(score)
}

// LocationSignal 距離0kmで1.0、MaxRadiusKmで0.0になる線形減衰シグナル
func LocationSignal(distanceKm float64) float64 {
	signal := 1.0 - distanceKm/model.MaxRadiusKm
	if signal < 0 {
		return 0
	}
	return signal
}

// recencySignal 投稿直後で1.0、RecencyWindowHours経過で0.0になる線形減衰シグナル
// ゼロ値のタイムスタンプ（パース不能なデータ）は0を返す
func (s *ScoringService) recencySignal(createdAt time.Time) float64 {
	if createdAt.IsZero() {
		return 0
	}
	hoursOld := s.now().Sub(createdAt).Hours()
	signal := 1.0 - hoursOld/model.RecencyWindowHours
	if signal < 0 {
		return 0
	}
	if signal > 1 {
		// 未来のタイムスタンプはクロックずれとして満点扱い
		return 1
	}
	return signal
}
