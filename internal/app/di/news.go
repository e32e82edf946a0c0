// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"capitalpulse_backend/internal/feature/news/adapters"
	"capitalpulse_backend/internal/feature/news/adapters/marketaux"
	newsusecase "capitalpulse_backend/internal/feature/news/usecase"
	"capitalpulse_backend/internal/platform/cache"
	"capitalpulse_backend/internal/platform/config"
	infrahttp "capitalpulse_backend/internal/platform/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// articleCacheTTL は記事キャッシュの生存時間です。
// ニュース鮮度ウィンドウより十分短くしてあります。
const articleCacheTTL = 5 * time.Minute

// NewNewsProvider creates a fully configured Marketaux client with HTTP client.
func NewNewsProvider(cfg *config.MarketauxConfig) *marketaux.MarketauxProvider {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return marketaux.NewMarketauxProvider(marketaux.Config{
		APIToken: cfg.APIToken,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
	}, httpClient)
}

// NewArticleRepository creates an ArticleRepository.
// If Redis is available, reads go through a Redis cache.
// Otherwise, it falls back to PostgreSQL directly.
func NewArticleRepository(rdb *redis.Client, db *gorm.DB) newsusecase.ArticleRepository {
	inner := adapters.NewArticleRepository(db)
	if rdb == nil {
		return inner
	}
	return cache.NewCachingArticleRepository(rdb, articleCacheTTL, inner, "news")
}
