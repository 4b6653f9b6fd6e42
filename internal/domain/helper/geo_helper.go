package helper

import (
	"errors"
	"math"

	"github.com/paulmach/orb"

	"Thikana-App/internal/domain/geohash"
	"Thikana-App/internal/domain/model"
)

const earthRadiusKm = 6371.0

// degToRad 度をラジアンに変換する
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// LocationToPoint model.Location を orb.Point に変換（orbは [lng, lat] 順）
func LocationToPoint(location *model.Location) *orb.Point {
	if location == nil {
		return nil
	}
	point := orb.Point{location.Longitude, location.Latitude}
	return &point
}

// PointToLocation orb.Point を model.Location に変換
func PointToLocation(point *orb.Point) *model.Location {
	if point == nil {
		return nil
	}
	return &model.Location{
		Latitude:  point.Lat(),
		Longitude: point.Lon(),
	}
}

// HaversineKm 2点間の大円距離をkmで返す
// スコアリング規約により地球半径R=6371.0kmの標準ハバーサイン公式で統一する
// （orb/geoのDistanceは半径6378137mを使うためここでは使用しない）
func HaversineKm(from, to model.Location) float64 {
	lat1 := degToRad(from.Latitude)
	lat2 := degToRad(to.Latitude)
	dLat := degToRad(to.Latitude - from.Latitude)
	dLon := degToRad(to.Longitude - from.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// RoundKm 距離表示用にkm値を小数第2位へ丸める
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// RoundScore スコアを小数第4位へ丸める（出力の安定性のため）
func RoundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}

// CellBound geohashセルが覆う矩形領域を orb.Bound として返す
func CellBound(cell string) (orb.Bound, error) {
	lat, lon, latErr, lonErr, err := geohash.Decode(cell)
	if err != nil {
		return orb.Bound{}, err
	}
	return orb.Bound{
		Min: orb.Point{lon - lonErr, lat - latErr},
		Max: orb.Point{lon + lonErr, lat + latErr},
	}, nil
}

// CellsBound 複数セルをまとめた境界ボックスを返す（検索範囲のログ出力用）
func CellsBound(cells []string) (orb.Bound, error) {
	if len(cells) == 0 {
		return orb.Bound{}, errors.New("セルが指定されていません")
	}
	bound, err := CellBound(cells[0])
	if err != nil {
		return orb.Bound{}, err
	}
	for _, cell := range cells[1:] {
		b, err := CellBound(cell)
		if err != nil {
			return orb.Bound{}, err
		}
		bound = bound.Union(b)
	}
	return bound, nil
}
