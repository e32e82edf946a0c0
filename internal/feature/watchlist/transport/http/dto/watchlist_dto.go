// Package dto はwatchlistフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

import "time"

// CreateWatchlistRequest はウォッチリスト作成のリクエストボディです。
type CreateWatchlistRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateWatchlistRequest はウォッチリスト改名のリクエストボディです。
type UpdateWatchlistRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// AddTickerRequest は銘柄追加のリクエストボディです。
// TickerID は銘柄シンボル（例: NVDA）です。
type AddTickerRequest struct {
	TickerID  string `json:"tickerId" binding:"required,max=20"`
	StockName string `json:"stockName" binding:"max=100"`
}

// TickerResponse はウォッチリスト内の銘柄情報です。
type TickerResponse struct {
	ID        string `json:"id"`
	StockName string `json:"stockName"`
}

// WatchlistResponse はウォッチリスト1件のレスポンスです。
type WatchlistResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Tickers   []TickerResponse `json:"tickers"`
}

// TopTickerResponse は人気銘柄ランキングの1行です。
type TopTickerResponse struct {
	Symbol    string `json:"symbol"`
	StockName string `json:"stockName"`
	Count     int64  `json:"count"`
}
