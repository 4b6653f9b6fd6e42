package model

import "time"

// 空間検索の定数
const (
	// GeohashPrecision precision=5 で約5km×5kmのセル（近隣レベル）
	GeohashPrecision = 5

	// MaxRadiusKm この半径を超えるビジネスは位置シグナルが0になる
	MaxRadiusKm = 10.0

	// FirestoreBatchLimit Firestoreの'in'クエリ・GetAllの上限（1クエリあたりのID数）
	FirestoreBatchLimit = 10

	// MaxChunkConcurrency バッチチャンクの同時実行数の上限
	MaxChunkConcurrency = 4

	// PostsPerBusiness 1ビジネスあたり取得する最新投稿数の上限
	PostsPerBusiness = 5
)

// フィードスコアリングの重み（合計1.0）
const (
	// RecencyWindowHours 7日間 — これより古い投稿は新着シグナルが0
	RecencyWindowHours = 168.0

	PostWeightFollowing = 0.55
	PostWeightLocation  = 0.35
	PostWeightRecency   = 0.10
)

// 「Who to Follow」スコアリングの重み（合計1.0）
const (
	// MaxPostCount postCountを正規化する上限値
	MaxPostCount = 20

	FollowWeightLocation = 0.70
	FollowWeightActivity = 0.30
)

// RecommendationType の定数
const (
	RecommendationFollowed = "followed"
	RecommendationNearby   = "nearby"
)

// フィードローダーの定数
const (
	// FeedCacheTTL リフレッシュ時にキャッシュを再利用する期間
	FeedCacheTTL = 60 * time.Second

	// LocationTimeout 現在地取得のタイムアウト
	LocationTimeout = 5 * time.Second

	// DefaultFeedLimit フィードのデフォルト取得件数
	DefaultFeedLimit = 20

	// DefaultSuggestionLimit Who to Followのデフォルト取得件数
	DefaultSuggestionLimit = 10
)

// DefaultLocation 位置情報が取得できない場合のフォールバック座標（プネー市中心部）
var DefaultLocation = Location{Latitude: 18.5204, Longitude: 73.8567}
