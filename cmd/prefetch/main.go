// ウォッチリスト登録銘柄のニュースを先読みするバッチです。
// cronなどで定期実行されることを想定しています。
package main

import (
	"context"
	"time"

	"capitalpulse_backend/internal/app/di"
	newsusecase "capitalpulse_backend/internal/feature/news/usecase"
	watchlistadapters "capitalpulse_backend/internal/feature/watchlist/adapters"
	"capitalpulse_backend/internal/platform/config"
	infradb "capitalpulse_backend/internal/platform/db"
	"capitalpulse_backend/internal/platform/logger"
	"capitalpulse_backend/internal/shared/ratelimiter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Logging.Level)

	db, err := infradb.OpenDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// バッチはキャッシュを経由せず直接ストアに書く
	articleRepo := di.NewArticleRepository(nil, db)
	newsUC := newsusecase.NewNewsUsecase(articleRepo, di.NewNewsProvider(&cfg.Marketaux), log)
	watchlistRepo := watchlistadapters.NewWatchlistPostgres(db)

	// 上流APIの無料枠に合わせた保守的なレート
	limiter := ratelimiter.NewRateLimiter(8, time.Minute)
	prefetch := newsusecase.NewPrefetchUsecase(newsUC, watchlistRepo, limiter)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := prefetch.PrefetchAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("prefetch failed")
	}
	log.Info().Msg("prefetch ok")
}
