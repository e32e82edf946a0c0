// Package entity はwatchlistフィーチャーのドメインエンティティを定義します。
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Ticker は取り扱い可能な銘柄を表します。シンボルが主キーです。
type Ticker struct {
	Symbol    string `gorm:"primaryKey;size:20"`
	StockName string
}

// TableName はGORMで使用するテーブル名を返します。
func (Ticker) TableName() string { return "tickers" }

// Watchlist はユーザーが所有する銘柄リストを表します。
// 同一ユーザー内で名前は一意（大文字小文字を区別しない）です。
type Watchlist struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Tickers   []WatchlistTicker `gorm:"foreignKey:WatchlistID;constraint:OnDelete:CASCADE"`
}

// TableName はGORMで使用するテーブル名を返します。
func (Watchlist) TableName() string { return "watchlists" }

// WatchlistTicker はウォッチリストと銘柄の中間テーブルです。
// 複合主キーにより同一リスト内の重複登録を防ぎます。
type WatchlistTicker struct {
	WatchlistID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	TickerSymbol string    `gorm:"primaryKey;size:20"`
	Ticker       Ticker    `gorm:"foreignKey:TickerSymbol;references:Symbol"`
}

// TableName はGORMで使用するテーブル名を返します。
func (WatchlistTicker) TableName() string { return "watchlist_tickers" }

// TickerCount は集計クエリ（人気銘柄ランキング）の結果行です。
type TickerCount struct {
	Symbol    string
	StockName string
	Count     int64
}
