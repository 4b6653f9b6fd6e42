package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"Thikana-App/internal/domain/geohash"
	"Thikana-App/internal/domain/helper"
	"Thikana-App/internal/domain/model"
	"Thikana-App/internal/domain/repository"
)

// SearchStrategy 近傍検索の実行戦略
type SearchStrategy string

const (
	// StrategyGeohashIndex location_indexのセルルックアップによる通常経路
	StrategyGeohashIndex SearchStrategy = "geohash_index"

	// StrategyFullScan 全ビジネス走査＋ハバーサインフィルタによる縮退経路
	// インデックス未整備時のO(全件)のフォールバックで、エラーではない
	StrategyFullScan SearchStrategy = "full_scan"
)

// StrategyPolicy インデックス経路のヒット数から戦略を選択する
// テストから経路を強制できるよう注入可能にしている
type StrategyPolicy func(indexHits int) SearchStrategy

// DefaultStrategyPolicy インデックスが空の場合のみフォールバックする既定ポリシー
func DefaultStrategyPolicy(indexHits int) SearchStrategy {
	if indexHits == 0 {
		return StrategyFullScan
	}
	return StrategyGeohashIndex
}

// NearbySearchService geohash空間インデックスによる近傍ビジネス検索を提供する
type NearbySearchService struct {
	indexRepo    repository.LocationIndexRepository
	businessRepo repository.BusinessRepository
	policy       StrategyPolicy
}

// NewNearbySearchService 新しいNearbySearchServiceインスタンスを作成
func NewNearbySearchService(indexRepo repository.LocationIndexRepository, businessRepo repository.BusinessRepository, policy StrategyPolicy) *NearbySearchService {
	if policy == nil {
		policy = DefaultStrategyPolicy
	}
	return &NearbySearchService{
		indexRepo:    indexRepo,
		businessRepo: businessRepo,
		policy:       policy,
	}
}

// NearbyBusinessIDs 指定座標の近傍にいるビジネスIDの集合を返す
//
// 通常経路: 中心＋8近傍の9セルをポイントルックアップし、結果を和集合にする。
// セルは半径を近似しているため、ここでは距離による再フィルタは行わない
// （正確な距離はスコアリング側が真の座標で計算する）。
// インデックスが空の場合はフォールバック全走査に切り替え、こちらは
// ハバーサイン距離 ≤ maxRadiusKm で正確にフィルタする。
func (s *NearbySearchService) NearbyBusinessIDs(ctx context.Context, loc model.Location, maxRadiusKm float64) ([]string, error) {
	cells := geohash.SearchCells(loc.Latitude, loc.Longitude, model.GeohashPrecision)

	if bound, err := helper.CellsBound(cells); err == nil {
		log.Printf("🔍 近傍検索: %d セル 範囲 [%.4f,%.4f]〜[%.4f,%.4f]",
			len(cells), bound.Min.Lat(), bound.Min.Lon(), bound.Max.Lat(), bound.Max.Lon())
	}

	idSet := make(map[string]struct{})
	for _, cell := range cells {
		ids, err := s.indexRepo.GetCell(ctx, cell)
		if err != nil {
			// 単一セルの失敗は再現率を下げるだけなのでスキップして継続
			log.Printf("⚠️ location_indexセル %s の取得に失敗、スキップ: %v", cell, err)
			continue
		}
		for _, id := range ids {
			idSet[id] = struct{}{}
		}
	}

	if s.policy(len(idSet)) == StrategyFullScan {
		log.Printf("⚠️ location_indexが空のためフォールバック全走査に切り替え")
		return s.fullScan(ctx, loc, maxRadiusKm)
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids) // マージ順に依存しない安定した出力にする
	return ids, nil
}

// fullScan 全ビジネスを走査し、ハバーサイン距離で正確にフィルタする縮退経路
func (s *NearbySearchService) fullScan(ctx context.Context, loc model.Location, maxRadiusKm float64) ([]string, error) {
	businesses, err := s.businessRepo.GetAllWithLocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("フォールバック全走査に失敗: %w", err)
	}

	var ids []string
	for _, biz := range businesses {
		if !biz.HasLocation() {
			continue
		}
		if helper.HaversineKm(loc, *biz.Location) <= maxRadiusKm {
			ids = append(ids, biz.ID)
		}
	}

	log.Printf("✅ フォールバック全走査完了: %d/%d 件が半径%.1fkm以内", len(ids), len(businesses), maxRadiusKm)
	return ids, nil
}
