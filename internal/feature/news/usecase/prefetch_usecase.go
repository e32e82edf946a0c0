package usecase

import (
	"context"

	"capitalpulse_backend/internal/feature/news/domain/entity"
	"capitalpulse_backend/internal/shared/ratelimiter"
)

// SymbolSource はウォームアップ対象のティッカーシンボル一覧を提供します。
type SymbolSource interface {
	TickerSymbols(ctx context.Context) ([]string, error)
}

// NewsFetcher はシンボル単位のニュース取得を抽象化します（通常はNewsUsecase）。
type NewsFetcher interface {
	GetNewsBySymbol(ctx context.Context, symbol string) ([]entity.NewsArticle, error)
}

// PrefetchUsecase はウォッチリストに登録されている全ティッカーのニュースを
// 事前に取り込み、対話リクエストの大半が新鮮パスに乗るようにします。
// Marketauxの無料プランは従量制のため、リクエスト間にレートリミットを挟みます。
type PrefetchUsecase struct {
	news    NewsFetcher
	symbols SymbolSource
	limiter ratelimiter.RateLimiterInterface
}

// NewPrefetchUsecase は新しい PrefetchUsecase を作成します。
func NewPrefetchUsecase(news NewsFetcher, symbols SymbolSource, limiter ratelimiter.RateLimiterInterface) *PrefetchUsecase {
	return &PrefetchUsecase{news: news, symbols: symbols, limiter: limiter}
}

// PrefetchAll は既知の全シンボルに対してキャッシュ/マージ経路を順に実行します。
// 1件でもストア障害が発生したら処理を中断してエラーを返します。
func (pu *PrefetchUsecase) PrefetchAll(ctx context.Context) error {
	symbols, err := pu.symbols.TickerSymbols(ctx)
	if err != nil {
		return err
	}

	for _, s := range symbols {
		pu.limiter.WaitIfNeeded()
		if _, err := pu.news.GetNewsBySymbol(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
