package application

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"Thikana-App/internal/domain/model"
	"Thikana-App/internal/domain/repository"
	"Thikana-App/internal/usecase"
)

// loaderDefaultLimit 1回のフェッチで要求するページサイズ
const loaderDefaultLimit = 15

// FeedState ローダーが公開するフィードの状態スナップショット
type FeedState struct {
	Posts          []model.FeedItem
	Loading        bool
	Err            error
	HasMore        bool
	LocationDenied bool
}

// feedCache 直近の成功したフェッチ結果
type feedCache struct {
	posts     []model.FeedItem
	hasMore   bool
	fetchedAt time.Time
}

// FeedLoader セッションスコープのインクリメンタルフィードローダー
//
// 1ユーザーセッションにつき1インスタンス。リフレッシュはTTL内ならキャッシュを
// そのまま返し、追加読み込みはキャッシュを迂回して既存リストへ一意マージする。
// 位置情報の利用拒否は終端状態であり、以降ストアへのアクセスは行わない
type FeedLoader struct {
	mu        sync.Mutex
	sessionID string
	userID    string
	limit     int
	feedUC    usecase.FeedUseCase
	locations repository.LocationProvider
	now       func() time.Time

	state FeedState
	cache *feedCache
}

// NewFeedLoader 新しいFeedLoaderインスタンスを作成
// nowがnilの場合はtime.Nowを使用する
func NewFeedLoader(userID string, limit int, feedUC usecase.FeedUseCase, locations repository.LocationProvider, now func() time.Time) *FeedLoader {
	if limit <= 0 {
		limit = loaderDefaultLimit
	}
	if now == nil {
		now = time.Now
	}
	sessionID := uuid.New().String()
	log.Printf("🚀 フィードセッション開始 (session: %s, user: %s)", sessionID, userID)
	return &FeedLoader{
		sessionID: sessionID,
		userID:    userID,
		limit:     limit,
		feedUC:    feedUC,
		locations: locations,
		now:       now,
		state:     FeedState{Posts: []model.FeedItem{}, HasMore: true},
	}
}

// State 現在の状態スナップショットを返す
func (l *FeedLoader) State() FeedState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

// FetchFeed フィードを取得して状態を更新する
//
// isRefresh=true: 先頭からの再取得。直近の成功結果がTTL内ならそれをそのまま返す
// isRefresh=false: 追加読み込み。キャッシュを迂回し、新規投稿のみを末尾へ追加する
func (l *FeedLoader) FetchFeed(ctx context.Context, isRefresh bool) FeedState {
	l.mu.Lock()

	// 位置情報拒否は終端状態
	if l.state.LocationDenied {
		defer l.mu.Unlock()
		return l.snapshot()
	}

	// 実行中の取得があれば現在の状態を返すだけ
	if l.state.Loading {
		defer l.mu.Unlock()
		return l.snapshot()
	}

	if isRefresh && l.cache != nil && l.now().Sub(l.cache.fetchedAt) < model.FeedCacheTTL {
		log.Printf("✅ キャッシュからフィードを返却 (session: %s)", l.sessionID)
		l.state.Posts = append([]model.FeedItem{}, l.cache.posts...)
		l.state.HasMore = l.cache.hasMore
		l.state.Err = nil
		defer l.mu.Unlock()
		return l.snapshot()
	}

	l.state.Loading = true
	l.mu.Unlock()

	loc, err := l.locations.CurrentLocation(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Loading = false

	if err != nil {
		if errors.Is(err, repository.ErrLocationDenied) {
			log.Printf("⚠️ 位置情報が拒否されたためフィードを停止 (session: %s)", l.sessionID)
			l.state = FeedState{Posts: []model.FeedItem{}, LocationDenied: true}
			l.cache = nil
			return l.snapshot()
		}
		l.state.Err = err
		return l.snapshot()
	}

	resp, err := l.feedUC.BuildFeed(ctx, l.userID, *loc, l.limit)
	if err != nil {
		l.state.Err = err
		return l.snapshot()
	}

	if isRefresh {
		l.state.Posts = append([]model.FeedItem{}, resp.Posts...)
	} else {
		l.state.Posts = mergeUnique(l.state.Posts, resp.Posts)
	}
	l.state.HasMore = resp.Count >= l.limit
	l.state.Err = nil

	l.cache = &feedCache{
		posts:     append([]model.FeedItem{}, l.state.Posts...),
		hasMore:   l.state.HasMore,
		fetchedAt: l.now(),
	}
	log.Printf("✅ フィード取得完了 (session: %s, posts: %d, hasMore: %t)", l.sessionID, len(l.state.Posts), l.state.HasMore)
	return l.snapshot()
}

// snapshot 呼び出し側から内部スライスを変更されないようコピーを返す
// 呼び出し元がmuを保持していること
func (l *FeedLoader) snapshot() FeedState {
	s := l.state
	s.Posts = append([]model.FeedItem{}, l.state.Posts...)
	return s
}

// mergeUnique 既存リストの順序を保ったまま、新規IDの投稿だけを末尾に追加する
func mergeUnique(existing, incoming []model.FeedItem) []model.FeedItem {
	seen := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		seen[item.ID] = struct{}{}
	}
	merged := append([]model.FeedItem{}, existing...)
	for _, item := range incoming {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		merged = append(merged, item)
	}
	return merged
}
