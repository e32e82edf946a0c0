// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"capitalpulse_backend/internal/feature/news/domain/entity"
	"capitalpulse_backend/internal/feature/news/usecase"
)

// CachingArticleRepository decorates an ArticleRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. The freshness decision inside the news
// engine is unaffected: cache entries mirror exactly what the store would
// return and are invalidated on every write.
type CachingArticleRepository struct {
	inner     usecase.ArticleRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingArticleRepository decorates an ArticleRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "news".
func NewCachingArticleRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ArticleRepository, namespace string) *CachingArticleRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "news"
	}
	return &CachingArticleRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindBySymbols retrieves articles, checking cache first then falling back to the database.
func (c *CachingArticleRepository) FindBySymbols(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindBySymbols(ctx, symbols)
	}

	key := c.cacheKey(symbols)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.NewsArticle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindBySymbols(ctx, symbols)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// ExistingIDs passes straight through to the underlying repository.
// Dedup decisions must always see the store's real state.
func (c *CachingArticleRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	return c.inner.ExistingIDs(ctx, ids)
}

// InsertBatch inserts articles and invalidates the cached query results.
// Keys combine several symbols, so membership per key cannot be derived from
// a glob; writes are rare enough that dropping the whole namespace is fine.
func (c *CachingArticleRepository) InsertBatch(ctx context.Context, articles []entity.NewsArticle) error {
	// First insert into the underlying repository
	if err := c.inner.InsertBatch(ctx, articles); err != nil {
		return err
	}
	if c.rdb == nil || len(articles) == 0 {
		return nil
	}

	_ = c.deleteByPattern(ctx, c.namespace+":*") // Best effort: don't fail if cache deletion fails
	return nil
}

// cacheKey generates a cache key for a symbol-set query.
func (c *CachingArticleRepository) cacheKey(symbols []string) string {
	safeSyms := make([]string, 0, len(symbols))
	for _, s := range symbols {
		safeSyms = append(safeSyms, safe(s))
	}
	return c.namespace + ":" + strings.Join(safeSyms, ",")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingArticleRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
