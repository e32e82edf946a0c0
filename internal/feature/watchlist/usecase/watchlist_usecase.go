// Package usecase はwatchlistフィーチャーのビジネスロジックを提供します。
package usecase

import (
	"context"
	"strings"
	"time"

	"capitalpulse_backend/internal/feature/watchlist/domain"
	"capitalpulse_backend/internal/feature/watchlist/domain/entity"

	"github.com/google/uuid"
)

// DefaultTopN は人気銘柄ランキングの既定の件数です。
const DefaultTopN = 3

// WatchlistRepository はウォッチリスト永続化のインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type WatchlistRepository interface {
	// FindByUser はユーザーの全ウォッチリストを返します。
	FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.Watchlist, error)
	// FindByID はユーザーが所有するウォッチリストを1件返します。
	// 存在しない・所有者が異なる場合は domain.ErrWatchlistNotFound を返します。
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Watchlist, error)
	// NameExists は同一ユーザー内に同名（大文字小文字無視）のリストがあるかを返します。
	// excludeID が uuid.Nil 以外の場合、そのリスト自身は対象外です。
	NameExists(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	// Create は新しいウォッチリストを保存します。
	Create(ctx context.Context, w *entity.Watchlist) error
	// Update はウォッチリストの属性を保存します。
	Update(ctx context.Context, w *entity.Watchlist) error
	// Delete はウォッチリストと中間レコードを削除します。
	Delete(ctx context.Context, id uuid.UUID) error
	// EnsureTicker は銘柄が未登録なら作成します。
	EnsureTicker(ctx context.Context, t *entity.Ticker) error
	// AddTicker は中間レコードを追加します。重複は domain.ErrDuplicateTicker です。
	AddTicker(ctx context.Context, watchlistID uuid.UUID, symbol string) error
	// RemoveTicker は中間レコードを削除します。
	// 存在しない場合は domain.ErrTickerNotInWatchlist を返します。
	RemoveTicker(ctx context.Context, watchlistID uuid.UUID, symbol string) error
	// TopTickers はユーザーの全ウォッチリストを横断して
	// 登録数の多い銘柄を上位n件返します。
	TopTickers(ctx context.Context, userID uuid.UUID, n int) ([]entity.TickerCount, error)
}

// WatchlistUsecase はウォッチリスト操作のユースケースです。
type WatchlistUsecase struct {
	repo WatchlistRepository
}

// NewWatchlistUsecase は新しい WatchlistUsecase を作成します。
func NewWatchlistUsecase(repo WatchlistRepository) *WatchlistUsecase {
	return &WatchlistUsecase{repo: repo}
}

// List はユーザーの全ウォッチリストを返します。
func (u *WatchlistUsecase) List(ctx context.Context, userID uuid.UUID) ([]entity.Watchlist, error) {
	return u.repo.FindByUser(ctx, userID)
}

// Get はユーザーが所有するウォッチリストを1件返します。
func (u *WatchlistUsecase) Get(ctx context.Context, id, userID uuid.UUID) (*entity.Watchlist, error) {
	return u.repo.FindByID(ctx, id, userID)
}

// Create は新しいウォッチリストを作成します。
// 同一ユーザー内で名前が重複する場合は domain.ErrDuplicateName を返します。
func (u *WatchlistUsecase) Create(ctx context.Context, userID uuid.UUID, name string) (*entity.Watchlist, error) {
	name = strings.TrimSpace(name)

	exists, err := u.repo.NameExists(ctx, userID, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateName
	}

	now := time.Now().UTC()
	w := &entity.Watchlist{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Rename はウォッチリストの名前を変更します。
func (u *WatchlistUsecase) Rename(ctx context.Context, id, userID uuid.UUID, name string) (*entity.Watchlist, error) {
	name = strings.TrimSpace(name)

	w, err := u.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	exists, err := u.repo.NameExists(ctx, userID, name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateName
	}

	w.Name = name
	w.UpdatedAt = time.Now().UTC()
	if err := u.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Delete はユーザーが所有するウォッチリストを削除します。
func (u *WatchlistUsecase) Delete(ctx context.Context, id, userID uuid.UUID) error {
	// 所有権チェックを兼ねる
	if _, err := u.repo.FindByID(ctx, id, userID); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}

// AddTicker はウォッチリストに銘柄を追加し、更新後のリストを返します。
// 銘柄が未登録の場合は遅延作成します。シンボルは大文字に正規化されます。
// 構成変更なのでリストの UpdatedAt も進めます。
func (u *WatchlistUsecase) AddTicker(ctx context.Context, id, userID uuid.UUID, symbol, stockName string) (*entity.Watchlist, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	w, err := u.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := u.repo.EnsureTicker(ctx, &entity.Ticker{Symbol: symbol, StockName: stockName}); err != nil {
		return nil, err
	}
	if err := u.repo.AddTicker(ctx, id, symbol); err != nil {
		return nil, err
	}

	w.UpdatedAt = time.Now().UTC()
	if err := u.repo.Update(ctx, w); err != nil {
		return nil, err
	}

	return u.repo.FindByID(ctx, id, userID)
}

// RemoveTicker はウォッチリストから銘柄を外し、更新後のリストを返します。
// 構成変更なのでリストの UpdatedAt も進めます。
func (u *WatchlistUsecase) RemoveTicker(ctx context.Context, id, userID uuid.UUID, symbol string) (*entity.Watchlist, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	w, err := u.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := u.repo.RemoveTicker(ctx, id, symbol); err != nil {
		return nil, err
	}

	w.UpdatedAt = time.Now().UTC()
	if err := u.repo.Update(ctx, w); err != nil {
		return nil, err
	}

	return u.repo.FindByID(ctx, id, userID)
}

// TopTickers はユーザーの全ウォッチリストを横断して登録数の多い銘柄を返します。
// n が0以下の場合は DefaultTopN が使われます。
func (u *WatchlistUsecase) TopTickers(ctx context.Context, userID uuid.UUID, n int) ([]entity.TickerCount, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	return u.repo.TopTickers(ctx, userID, n)
}
