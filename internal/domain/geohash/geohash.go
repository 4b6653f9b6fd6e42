// Package geohash 標準geohashアルゴリズムのエンコード・デコード・隣接セル計算を提供する。
// 経度→緯度の順で交互に二分探索し、MSBファーストの5bitごとにbase-32文字へ変換する
// 正規のアルゴリズムとビット単位で互換である。
package geohash

import (
	"fmt"
	"strings"
)

// Base32 geohash専用のbase-32アルファベット（a, i, l, oを除く）
const Base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// 隣接セル計算の方向
const (
	DirTop    = "top"
	DirBottom = "bottom"
	DirLeft   = "left"
	DirRight  = "right"
)

// neighborTables 方向ごとの隣接文字列。[0]=セル長が偶数のとき、[1]=奇数のとき。
// 末尾文字が経度主導か緯度主導かはセル長のパリティで決まる。
// 正規のgeohash近傍テーブル。1文字でも違うと隣接セルが壊れるため変更禁止。
var neighborTables = map[string][2]string{
	DirRight:  {"bc01fg45238967deuvhjyznpkmstqrwx", "p0r21436x8zb9dcf5h7kjnmqesgutwvy"},
	DirLeft:   {"238967debc01fg45kmstqrwxuvhjyznp", "14365h7k9dcfesgujnmqp0r2twvyx8zb"},
	DirTop:    {"p0r21436x8zb9dcf5h7kjnmqesgutwvy", "bc01fg45238967deuvhjyznpkmstqrwx"},
	DirBottom: {"14365h7k9dcfesgujnmqp0r2twvyx8zb", "238967debc01fg45kmstqrwxuvhjyznp"},
}

// borderTables 方向ごとの境界文字列。添字の意味はneighborTablesと同じ。
var borderTables = map[string][2]string{
	DirRight:  {"bcfguvyz", "prxz"},
	DirLeft:   {"0145hjnp", "028b"},
	DirTop:    {"prxz", "bcfguvyz"},
	DirBottom: {"028b", "0145hjnp"},
}

// Encode 緯度経度をgeohash文字列にエンコードする
func Encode(lat, lon float64, precision int) string {
	minLat, maxLat := -90.0, 90.0
	minLon, maxLon := -180.0, 180.0

	var sb strings.Builder
	isEven := true // 経度から開始
	bit := 0
	ch := 0

	for sb.Len() < precision {
		if isEven {
			mid := (minLon + maxLon) / 2
			if lon >= mid {
				ch |= 1 << (4 - bit)
				minLon = mid
			} else {
				maxLon = mid
			}
		} else {
			mid := (minLat + maxLat) / 2
			if lat >= mid {
				ch |= 1 << (4 - bit)
				minLat = mid
			} else {
				maxLat = mid
			}
		}
		isEven = !isEven

		if bit < 4 {
			bit++
		} else {
			sb.WriteByte(Base32[ch])
			bit = 0
			ch = 0
		}
	}

	return sb.String()
}

// Decode geohashセルの中心座標と半径（半セル幅）を返す
// 隣接セルの検証や境界計算に使用する
func Decode(cell string) (lat, lon, latErr, lonErr float64, err error) {
	if cell == "" {
		return 0, 0, 0, 0, fmt.Errorf("空のgeohashセルはデコードできません")
	}

	minLat, maxLat := -90.0, 90.0
	minLon, maxLon := -180.0, 180.0
	isEven := true

	for _, c := range strings.ToLower(cell) {
		idx := strings.IndexRune(Base32, c)
		if idx < 0 {
			return 0, 0, 0, 0, fmt.Errorf("不正なgeohash文字です: %q", c)
		}
		for bit := 4; bit >= 0; bit-- {
			bitVal := (idx >> bit) & 1
			if isEven {
				mid := (minLon + maxLon) / 2
				if bitVal == 1 {
					minLon = mid
				} else {
					maxLon = mid
				}
			} else {
				mid := (minLat + maxLat) / 2
				if bitVal == 1 {
					minLat = mid
				} else {
					maxLat = mid
				}
			}
			isEven = !isEven
		}
	}

	latErr = (maxLat - minLat) / 2
	lonErr = (maxLon - minLon) / 2
	return minLat + latErr, minLon + lonErr, latErr, lonErr, nil
}

// Adjacent 指定方向の隣接セルを計算する
// 末尾文字がその方向の境界文字の場合、親セルに対して再帰的に計算する
func Adjacent(cell, direction string) (string, error) {
	if cell == "" {
		return "", fmt.Errorf("空のgeohashセルの隣接セルは計算できません")
	}

	neighbor, ok := neighborTables[direction]
	if !ok {
		return "", fmt.Errorf("不正な方向です: %q", direction)
	}
	border := borderTables[direction]

	cell = strings.ToLower(cell)
	lastCh := cell[len(cell)-1]
	parent := cell[:len(cell)-1]

	parity := len(cell) % 2

	if strings.IndexByte(border[parity], lastCh) != -1 {
		if parent == "" {
			// 極付近など、親のない1文字セルで境界を越えた
			return "", fmt.Errorf("セル %q の %s 側の隣接セルは計算できません", cell, direction)
		}
		var err error
		parent, err = Adjacent(parent, direction)
		if err != nil {
			return "", err
		}
	}

	idx := strings.IndexByte(neighbor[parity], lastCh)
	if idx < 0 {
		return "", fmt.Errorf("不正なgeohash文字です: %q", lastCh)
	}
	return parent + string(Base32[idx]), nil
}

// SearchCells 指定座標を含むセルとその8近傍の計9セルを返す
// 隣接セル計算に失敗した場合は中心セルのみへ縮退する（近傍検索は失敗させない）
func SearchCells(lat, lon float64, precision int) []string {
	center := Encode(lat, lon, precision)

	cells, err := neighborhood(center)
	if err != nil {
		return []string{center}
	}
	return cells
}

// neighborhood 中心＋8近傍を返す。角のセルは隣接計算の合成で求める
func neighborhood(center string) ([]string, error) {
	top, err := Adjacent(center, DirTop)
	if err != nil {
		return nil, err
	}
	bottom, err := Adjacent(center, DirBottom)
	if err != nil {
		return nil, err
	}
	right, err := Adjacent(center, DirRight)
	if err != nil {
		return nil, err
	}
	left, err := Adjacent(center, DirLeft)
	if err != nil {
		return nil, err
	}
	topRight, err := Adjacent(top, DirRight)
	if err != nil {
		return nil, err
	}
	topLeft, err := Adjacent(top, DirLeft)
	if err != nil {
		return nil, err
	}
	bottomRight, err := Adjacent(bottom, DirRight)
	if err != nil {
		return nil, err
	}
	bottomLeft, err := Adjacent(bottom, DirLeft)
	if err != nil {
		return nil, err
	}

	return []string{center, top, bottom, right, left, topRight, topLeft, bottomRight, bottomLeft}, nil
}
