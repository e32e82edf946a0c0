// Package domain はwatchlistフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrWatchlistNotFound はウォッチリストが存在しない、
	// または要求ユーザーの所有物でない場合に返されます。
	// 所有権の有無は外部から区別できません。
	ErrWatchlistNotFound = errors.New("watchlist not found")

	// ErrDuplicateName は同一ユーザー内で名前が重複した場合に返されます。
	ErrDuplicateName = errors.New("watchlist name already exists")

	// ErrDuplicateTicker は同一リストに同じ銘柄を二重登録した場合に返されます。
	ErrDuplicateTicker = errors.New("ticker already in watchlist")

	// ErrTickerNotInWatchlist はリストに含まれない銘柄の削除時に返されます。
	ErrTickerNotInWatchlist = errors.New("ticker not in watchlist")
)
