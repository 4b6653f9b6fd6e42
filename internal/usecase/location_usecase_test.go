package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Thikana-App/internal/domain/geohash"
	"Thikana-App/internal/domain/model"
)

func TestUpdateBusinessLocation(t *testing.T) {
	oldLoc := model.Location{Latitude: 18.5204, Longitude: 73.8567}
	newLoc := model.Location{Latitude: 35.6812, Longitude: 139.7671} // 別セルへの移動
	oldCell := geohash.Encode(oldLoc.Latitude, oldLoc.Longitude, model.GeohashPrecision)
	newCell := geohash.Encode(newLoc.Latitude, newLoc.Longitude, model.GeohashPrecision)

	bizRepo := &fakeBusinessRepo{businesses: map[string]*model.Business{
		"biz-1": {ID: "biz-1", Location: &oldLoc},
	}}
	indexRepo := &fakeIndexRepo{}

	uc := NewLocationUseCase(bizRepo, indexRepo)
	require.NoError(t, uc.UpdateBusinessLocation(context.Background(), "biz-1", newLoc))

	assert.Equal(t, "biz-1", bizRepo.updatedID)
	assert.Equal(t, newLoc, *bizRepo.updatedLoc)
	assert.Equal(t, []string{"biz-1"}, indexRepo.removed[oldCell], "旧セルから除去される")
	assert.Equal(t, []string{"biz-1"}, indexRepo.added[newCell], "新セルへ追加される")
}

func TestUpdateBusinessLocationSameCell(t *testing.T) {
	oldLoc := model.Location{Latitude: 18.5204, Longitude: 73.8567}
	newLoc := model.Location{Latitude: 18.5205, Longitude: 73.8568} // 同一セル内の微移動
	cell := geohash.Encode(oldLoc.Latitude, oldLoc.Longitude, model.GeohashPrecision)
	require.Equal(t, cell, geohash.Encode(newLoc.Latitude, newLoc.Longitude, model.GeohashPrecision))

	bizRepo := &fakeBusinessRepo{businesses: map[string]*model.Business{
		"biz-1": {ID: "biz-1", Location: &oldLoc},
	}}
	indexRepo := &fakeIndexRepo{}

	uc := NewLocationUseCase(bizRepo, indexRepo)
	require.NoError(t, uc.UpdateBusinessLocation(context.Background(), "biz-1", newLoc))

	assert.Empty(t, indexRepo.removed, "同一セル内の移動では除去しない")
	assert.Equal(t, []string{"biz-1"}, indexRepo.added[cell])
}

func TestUpdateBusinessLocationFirstTime(t *testing.T) {
	// 位置未設定のビジネスは旧セルの付け替えなしで登録される
	newLoc := model.Location{Latitude: 18.5204, Longitude: 73.8567}
	newCell := geohash.Encode(newLoc.Latitude, newLoc.Longitude, model.GeohashPrecision)

	bizRepo := &fakeBusinessRepo{businesses: map[string]*model.Business{
		"biz-1": {ID: "biz-1"},
	}}
	indexRepo := &fakeIndexRepo{}

	uc := NewLocationUseCase(bizRepo, indexRepo)
	require.NoError(t, uc.UpdateBusinessLocation(context.Background(), "biz-1", newLoc))

	assert.Empty(t, indexRepo.removed)
	assert.Equal(t, []string{"biz-1"}, indexRepo.added[newCell])
}

func TestUpdateBusinessLocationInvalid(t *testing.T) {
	bizRepo := &fakeBusinessRepo{}
	indexRepo := &fakeIndexRepo{}

	uc := NewLocationUseCase(bizRepo, indexRepo)
	err := uc.UpdateBusinessLocation(context.Background(), "biz-1", model.Location{Latitude: 91, Longitude: 0})

	assert.Error(t, err)
	assert.Empty(t, bizRepo.updatedID, "範囲外の座標では書き込みを行わない")
	assert.Empty(t, indexRepo.added)
}

func TestUpdateBusinessLocationIndexFailureIsBestEffort(t *testing.T) {
	newLoc := model.Location{Latitude: 18.5204, Longitude: 73.8567}

	bizRepo := &fakeBusinessRepo{businesses: map[string]*model.Business{
		"biz-1": {ID: "biz-1"},
	}}
	indexRepo := &fakeIndexRepo{addErr: errors.New("firestore unavailable")}

	uc := NewLocationUseCase(bizRepo, indexRepo)

	// 正本はlocationフィールドなので、インデックス付け替えの失敗はエラーにしない
	assert.NoError(t, uc.UpdateBusinessLocation(context.Background(), "biz-1", newLoc))
	assert.Equal(t, "biz-1", bizRepo.updatedID)
}

func TestUpdateBusinessLocationWriteFailure(t *testing.T) {
	bizRepo := &fakeBusinessRepo{updateErr: errors.New("firestore unavailable")}
	indexRepo := &fakeIndexRepo{}

	uc := NewLocationUseCase(bizRepo, indexRepo)
	err := uc.UpdateBusinessLocation(context.Background(), "biz-1", model.Location{Latitude: 18.5204, Longitude: 73.8567})

	assert.Error(t, err)
	assert.Empty(t, indexRepo.added, "書き込み失敗時はインデックスを更新しない")
}
