package repository

import (
	"context"
	"errors"

	"Thikana-App/internal/domain/model"
)

// ErrLocationDenied 位置情報の利用がユーザーに拒否されたことを示す
// タイムアウトや未対応環境とは区別し、呼び出し側は再試行可能な状態として扱う
var ErrLocationDenied = errors.New("位置情報の利用が拒否されました")

// LocationProvider 現在地の取得を提供する
// 取得はブロッキング操作であり、実装側でタイムアウトを持つこと
type LocationProvider interface {
	CurrentLocation(ctx context.Context) (*model.Location, error)
}
