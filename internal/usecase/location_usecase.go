package usecase

import (
	"context"
	"fmt"
	"log"

	"Thikana-App/internal/domain/geohash"
	"Thikana-App/internal/domain/model"
	"Thikana-App/internal/domain/repository"
)

// LocationUseCase ビジネス位置情報の更新と空間インデックスの保守を提供する
type LocationUseCase interface {
	// UpdateBusinessLocation 位置を更新し、location_indexの所属セルを付け替える
	UpdateBusinessLocation(ctx context.Context, businessID string, loc model.Location) error
}

// locationUseCaseImpl LocationUseCaseの実装
type locationUseCaseImpl struct {
	businessRepo repository.BusinessRepository
	indexRepo    repository.LocationIndexRepository
}

// NewLocationUseCase 新しいLocationUseCaseインスタンスを作成
func NewLocationUseCase(
	businessRepo repository.BusinessRepository,
	indexRepo repository.LocationIndexRepository,
) LocationUseCase {
	return &locationUseCaseImpl{
		businessRepo: businessRepo,
		indexRepo:    indexRepo,
	}
}

// UpdateBusinessLocation ビジネスの位置情報を更新する
//
// 正本はbusinessesドキュメントのlocationフィールドで、この書き込みの失敗のみ
// エラーとして返す。location_indexの付け替えはベストエフォートであり、
// 失敗してもフォールバック全走査が再現率を補うためログに留める
func (u *locationUseCaseImpl) UpdateBusinessLocation(ctx context.Context, businessID string, loc model.Location) error {
	if !loc.IsValid() {
		return fmt.Errorf("緯度経度が範囲外です: (%f, %f)", loc.Latitude, loc.Longitude)
	}

	newCell := geohash.Encode(loc.Latitude, loc.Longitude, model.GeohashPrecision)

	// 旧セルの特定（ビジネス未登録・位置未設定は付け替え不要なだけでエラーではない）
	oldCell := ""
	if biz, err := u.businessRepo.GetByID(ctx, businessID); err == nil && biz.HasLocation() {
		oldCell = geohash.Encode(biz.Location.Latitude, biz.Location.Longitude, model.GeohashPrecision)
	}

	if err := u.businessRepo.UpdateLocation(ctx, businessID, loc); err != nil {
		return fmt.Errorf("位置情報の更新に失敗: %w", err)
	}
	log.Printf("💾 ビジネス %s の位置を更新 (cell: %s)", businessID, newCell)

	if oldCell != "" && oldCell != newCell {
		if err := u.indexRepo.RemoveBusinessFromCell(ctx, oldCell, businessID); err != nil {
			log.Printf("⚠️ 旧セル %s からの除去に失敗: %v", oldCell, err)
		}
	}
	if err := u.indexRepo.AddBusinessToCell(ctx, newCell, businessID); err != nil {
		log.Printf("⚠️ 新セル %s への追加に失敗: %v", newCell, err)
	}

	return nil
}
