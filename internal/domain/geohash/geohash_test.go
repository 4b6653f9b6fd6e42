package geohash

import (
	"math"
	"testing"
)

func TestEncode(t *testing.T) {
	cases := []struct {
		name      string
		lat, lon  float64
		precision int
		want      string
	}{
		{"ユトランド半島（公開テストベクタ）", 57.64911, 10.40744, 11, "u4pruydqqvj"},
		{"レオン近郊（公開テストベクタ）", 42.605, -5.603, 5, "ezs42"},
		{"ユトランド半島 precision=5", 57.64911, 10.40744, 5, "u4pru"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Encode(tc.lat, tc.lon, tc.precision)
			if got != tc.want {
				t.Errorf("Encode(%f, %f, %d) = %q, want %q", tc.lat, tc.lon, tc.precision, got, tc.want)
			}
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	coords := []struct{ lat, lon float64 }{
		{18.5204, 73.8567},   // プネー
		{35.6812, 139.7671},  // 東京
		{-33.8688, 151.2093}, // シドニー
		{42.605, -5.603},
	}

	for _, c := range coords {
		cell := Encode(c.lat, c.lon, 5)
		lat, lon, latErr, lonErr, err := Decode(cell)
		if err != nil {
			t.Fatalf("Decode(%q) でエラー: %v", cell, err)
		}
		// 元の座標はセルの中心から半セル幅以内にあるはず
		if math.Abs(lat-c.lat) > latErr {
			t.Errorf("セル %q の中心緯度 %f が元の %f から半セル幅 %f を超えている", cell, lat, c.lat, latErr)
		}
		if math.Abs(lon-c.lon) > lonErr {
			t.Errorf("セル %q の中心経度 %f が元の %f から半セル幅 %f を超えている", cell, lon, c.lon, lonErr)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, _, _, _, err := Decode(""); err == nil {
		t.Error("空文字列のDecodeはエラーになるべき")
	}
	if _, _, _, _, err := Decode("abc"); err == nil {
		t.Error("不正な文字（a）を含むDecodeはエラーになるべき")
	}
}

func TestAdjacentKnownCells(t *testing.T) {
	cases := []struct {
		cell, direction, want string
	}{
		{"u", DirRight, "v"},
		{"u", DirBottom, "s"},
		{"s", DirTop, "u"},
		{"s", DirRight, "t"},
		{"u0", DirTop, "u1"},
		// 境界再帰: u1の左隣は親セルを跨いでgc
		{"u1", DirLeft, "gc"},
	}

	for _, tc := range cases {
		got, err := Adjacent(tc.cell, tc.direction)
		if err != nil {
			t.Fatalf("Adjacent(%q, %q) でエラー: %v", tc.cell, tc.direction, err)
		}
		if got != tc.want {
			t.Errorf("Adjacent(%q, %q) = %q, want %q", tc.cell, tc.direction, got, tc.want)
		}
	}
}

// TestAdjacentGeometry 隣接セルの中心が正しい方向に1セル幅だけずれていることを
// デコード結果で検証する（テーブルの正しさの幾何学的な裏取り）
func TestAdjacentGeometry(t *testing.T) {
	cells := []string{
		Encode(18.5204, 73.8567, 5),
		Encode(35.6812, 139.7671, 5),
		Encode(42.605, -5.603, 5),
		Encode(57.64911, 10.40744, 6),
	}

	for _, cell := range cells {
		lat, lon, latErr, lonErr, err := Decode(cell)
		if err != nil {
			t.Fatalf("Decode(%q) でエラー: %v", cell, err)
		}

		checks := []struct {
			direction  string
			dLat, dLon float64
		}{
			{DirTop, 2 * latErr, 0},
			{DirBottom, -2 * latErr, 0},
			{DirRight, 0, 2 * lonErr},
			{DirLeft, 0, -2 * lonErr},
		}

		for _, chk := range checks {
			adj, err := Adjacent(cell, chk.direction)
			if err != nil {
				t.Fatalf("Adjacent(%q, %q) でエラー: %v", cell, chk.direction, err)
			}
			aLat, aLon, _, _, err := Decode(adj)
			if err != nil {
				t.Fatalf("Decode(%q) でエラー: %v", adj, err)
			}
			if math.Abs(aLat-(lat+chk.dLat)) > 1e-9 {
				t.Errorf("%q の %s 隣接セル %q: 中心緯度 %f, want %f", cell, chk.direction, adj, aLat, lat+chk.dLat)
			}
			if math.Abs(aLon-(lon+chk.dLon)) > 1e-9 {
				t.Errorf("%q の %s 隣接セル %q: 中心経度 %f, want %f", cell, chk.direction, adj, aLon, lon+chk.dLon)
			}
		}
	}
}

func TestSearchCells(t *testing.T) {
	cells := SearchCells(18.5204, 73.8567, 5)

	if len(cells) != 9 {
		t.Fatalf("SearchCellsは9セルを返すべき: %d", len(cells))
	}

	center := Encode(18.5204, 73.8567, 5)
	if cells[0] != center {
		t.Errorf("先頭は中心セル %q であるべき: %q", center, cells[0])
	}

	seen := make(map[string]struct{})
	for _, cell := range cells {
		if len(cell) != 5 {
			t.Errorf("セル長は5であるべき: %q", cell)
		}
		if _, dup := seen[cell]; dup {
			t.Errorf("セルが重複している: %q", cell)
		}
		seen[cell] = struct{}{}
	}
}

func TestSearchCellsDegradesAtPole(t *testing.T) {
	// 北極直下では上方向の隣接セルが存在しないため中心セルのみへ縮退する
	cells := SearchCells(89.9999, 179.9999, 5)
	if len(cells) != 1 {
		t.Fatalf("極付近では中心セルのみへ縮退するべき: %d セル", len(cells))
	}
	if cells[0] != Encode(89.9999, 179.9999, 5) {
		t.Errorf("縮退時は中心セルを返すべき: %q", cells[0])
	}
}
