package location

import (
	"context"
	"errors"
	"log"

	"Thikana-App/internal/domain/model"
	"Thikana-App/internal/domain/repository"
)

// StaticProvider 常に固定の座標を返すプロバイダ
// クライアントから座標を受け取った後のセッションや、テストで使用する
type StaticProvider struct {
	loc model.Location
}

// NewStaticProvider 新しいStaticProviderインスタンスを作成
func NewStaticProvider(loc model.Location) *StaticProvider {
	return &StaticProvider{loc: loc}
}

// CurrentLocation 固定座標を返す
func (p *StaticProvider) CurrentLocation(_ context.Context) (*model.Location, error) {
	loc := p.loc
	return &loc, nil
}

// DeniedProvider 位置情報の利用拒否を表すプロバイダ
// ユーザーが位置情報の提供を許可しなかったセッションで使用する
type DeniedProvider struct{}

// NewDeniedProvider 新しいDeniedProviderインスタンスを作成
func NewDeniedProvider() *DeniedProvider {
	return &DeniedProvider{}
}

// CurrentLocation 常にErrLocationDeniedを返す
func (p *DeniedProvider) CurrentLocation(_ context.Context) (*model.Location, error) {
	return nil, repository.ErrLocationDenied
}

// FallbackProvider 位置解決にタイムアウトとデフォルト座標のフォールバックを付けるデコレータ
//
// 明示的な利用拒否だけはフォールバックせずそのまま伝播する。
// タイムアウトや取得失敗はデフォルト座標（プネー中心部）に縮退する
type FallbackProvider struct {
	inner    repository.LocationProvider
	fallback model.Location
}

// NewFallbackProvider 新しいFallbackProviderインスタンスを作成
func NewFallbackProvider(inner repository.LocationProvider) *FallbackProvider {
	return &FallbackProvider{inner: inner, fallback: model.DefaultLocation}
}

// CurrentLocation 位置を解決する。拒否以外の失敗はデフォルト座標を返す
func (p *FallbackProvider) CurrentLocation(ctx context.Context) (*model.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, model.LocationTimeout)
	defer cancel()

	loc, err := p.inner.CurrentLocation(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrLocationDenied) {
			return nil, err
		}
		log.Printf("⚠️ 位置情報の取得に失敗、デフォルト座標へ縮退: %v", err)
		fallback := p.fallback
		return &fallback, nil
	}
	if loc == nil || !loc.IsValid() {
		log.Printf("⚠️ 位置情報が無効、デフォルト座標へ縮退")
		fallback := p.fallback
		return &fallback, nil
	}
	return loc, nil
}
