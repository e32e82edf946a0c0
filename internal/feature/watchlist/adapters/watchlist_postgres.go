// Package adapters はwatchlistフィーチャーの永続化実装を提供します。
package adapters

import (
	"context"
	"errors"

	"capitalpulse_backend/internal/feature/watchlist/domain"
	"capitalpulse_backend/internal/feature/watchlist/domain/entity"
	"capitalpulse_backend/internal/feature/watchlist/usecase"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WatchlistPostgres はGORMを使用したWatchlistRepositoryの実装です。
// TickerSymbols も備えており、ニュース先読みバッチの銘柄ソースを兼ねます。
type WatchlistPostgres struct {
	db *gorm.DB
}

// NewWatchlistPostgres は新しいリポジトリを作成します。
func NewWatchlistPostgres(db *gorm.DB) *WatchlistPostgres {
	return &WatchlistPostgres{db: db}
}

var _ usecase.WatchlistRepository = (*WatchlistPostgres)(nil)

// FindByUser はユーザーの全ウォッチリストを作成日時の昇順で返します。
func (r *WatchlistPostgres) FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.Watchlist, error) {
	var lists []entity.Watchlist
	err := r.db.WithContext(ctx).
		Preload("Tickers.Ticker").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// FindByID はID・所有者の両方が一致するウォッチリストを返します。
// 所有者が異なる場合も domain.ErrWatchlistNotFound になります。
func (r *WatchlistPostgres) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Watchlist, error) {
	var w entity.Watchlist
	err := r.db.WithContext(ctx).
		Preload("Tickers.Ticker").
		Where("id = ? AND user_id = ?", id, userID).
		First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWatchlistNotFound
		}
		return nil, err
	}
	return &w, nil
}

// NameExists は同一ユーザー内の同名リストの有無を返します（大文字小文字無視）。
func (r *WatchlistPostgres) NameExists(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&entity.Watchlist{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *WatchlistPostgres) Create(ctx context.Context, w *entity.Watchlist) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WatchlistPostgres) Update(ctx context.Context, w *entity.Watchlist) error {
	return r.db.WithContext(ctx).
		Model(&entity.Watchlist{}).
		Where("id = ?", w.ID).
		Updates(map[string]interface{}{
			"name":       w.Name,
			"updated_at": w.UpdatedAt,
		}).Error
}

// Delete はウォッチリスト本体と中間レコードをトランザクションで削除します。
func (r *WatchlistPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("watchlist_id = ?", id).Delete(&entity.WatchlistTicker{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&entity.Watchlist{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrWatchlistNotFound
		}
		return nil
	})
}

// EnsureTicker は銘柄を登録します。登録済みの場合は何もしません。
func (r *WatchlistPostgres) EnsureTicker(ctx context.Context, t *entity.Ticker) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(t).Error
}

// AddTicker は中間レコードを追加します。重複は domain.ErrDuplicateTicker です。
func (r *WatchlistPostgres) AddTicker(ctx context.Context, watchlistID uuid.UUID, symbol string) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.WatchlistTicker{}).
		Where("watchlist_id = ? AND ticker_symbol = ?", watchlistID, symbol).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrDuplicateTicker
	}

	return r.db.WithContext(ctx).Create(&entity.WatchlistTicker{
		WatchlistID:  watchlistID,
		TickerSymbol: symbol,
	}).Error
}

// RemoveTicker は中間レコードを削除します。
func (r *WatchlistPostgres) RemoveTicker(ctx context.Context, watchlistID uuid.UUID, symbol string) error {
	res := r.db.WithContext(ctx).
		Where("watchlist_id = ? AND ticker_symbol = ?", watchlistID, symbol).
		Delete(&entity.WatchlistTicker{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTickerNotInWatchlist
	}
	return nil
}

// TopTickers はユーザーが所有する全ウォッチリスト横断の登録数ランキングを返します。
// 同数の場合はシンボルの昇順で安定させます。
func (r *WatchlistPostgres) TopTickers(ctx context.Context, userID uuid.UUID, n int) ([]entity.TickerCount, error) {
	var counts []entity.TickerCount
	err := r.db.WithContext(ctx).
		Table("watchlist_tickers").
		Select("watchlist_tickers.ticker_symbol AS symbol, tickers.stock_name AS stock_name, COUNT(*) AS count").
		Joins("JOIN watchlists ON watchlists.id = watchlist_tickers.watchlist_id").
		Joins("JOIN tickers ON tickers.symbol = watchlist_tickers.ticker_symbol").
		Where("watchlists.user_id = ?", userID).
		Group("watchlist_tickers.ticker_symbol, tickers.stock_name").
		Order("count DESC, symbol ASC").
		Limit(n).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// TickerSymbols は登録済みの全銘柄シンボルを返します。
// ニュース先読みバッチの対象リストとして使われます。
func (r *WatchlistPostgres) TickerSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&entity.Ticker{}).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}
