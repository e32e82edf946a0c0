// Package usecase はnewsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"capitalpulse_backend/internal/feature/news/domain/entity"

	"github.com/rs/zerolog"
)

// FreshnessWindow はストア内の記事を「新鮮」とみなす期間です。
// この期間内の記事が1件でもあれば、上流プロバイダーへの問い合わせを省略します。
const FreshnessWindow = 6 * time.Hour

// ArticleRepository はニュース記事の永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ArticleRepository interface {
	// FindBySymbols はエンティティに指定シンボルのいずれかを含む全記事を
	// published_at降順で返します。関連エンティティもロード済みであること。
	FindBySymbols(ctx context.Context, symbols []string) ([]entity.NewsArticle, error)

	// ExistingIDs は指定IDのうち、既にストアに存在するものを返します。
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)

	// InsertBatch は記事をエンティティごと一括挿入します。主キー衝突した行は
	// 他の行を巻き込まずにスキップされること。
	InsertBatch(ctx context.Context, articles []entity.NewsArticle) error
}

// NewsProvider は上流ニュースAPIを抽象化します。
type NewsProvider interface {
	// FetchBySymbols は指定シンボル群の最新記事を取得します。
	FetchBySymbols(ctx context.Context, symbols []string) ([]entity.NewsArticle, error)
}

// NewsUsecase は永続ストアを従量制の上流APIに対するキャッシュとして扱い、
// シンボルごとの既知の記事集合を重複なく提供します。
type NewsUsecase struct {
	articles ArticleRepository
	provider NewsProvider
	log      zerolog.Logger
}

// NewNewsUsecase はNewsUsecaseの新しいインスタンスを生成します。
func NewNewsUsecase(articles ArticleRepository, provider NewsProvider, log zerolog.Logger) *NewsUsecase {
	return &NewsUsecase{
		articles: articles,
		provider: provider,
		log:      log,
	}
}

// GetNewsBySymbol は単一シンボルの記事一覧を返します。
func (u *NewsUsecase) GetNewsBySymbol(ctx context.Context, symbol string) ([]entity.NewsArticle, error) {
	return u.GetNewsBySymbols(ctx, []string{symbol})
}

// GetNewsBySymbols は指定シンボル群の記事一覧を新しい順で返します。
//
// ストア内に新鮮な記事（FreshnessWindow以内）が1件でもあれば、ストアの内容を
// そのまま返します。新鮮な記事が1件もない場合のみ上流APIを呼び、未知の記事を
// 永続化したうえでマージした結果を返します。上流の失敗はソフト障害として扱い、
// ストアの内容のみを返します（ストア自体の失敗は呼び出し元へ伝播します）。
func (u *NewsUsecase) GetNewsBySymbols(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return []entity.NewsArticle{}, nil
	}

	stored, err := u.articles.FindBySymbols(ctx, symbols)
	if err != nil {
		return nil, err
	}

	// 新鮮さの判定はシンボル単位でなく集合全体に対して行う（粗い方針だが仕様どおり）
	cutoff := time.Now().UTC().Add(-FreshnessWindow)
	for _, a := range stored {
		if !a.PublishedAt.Before(cutoff) {
			return stored, nil
		}
	}

	fetched, err := u.provider.FetchBySymbols(ctx, symbols)
	if err != nil {
		// 上流の障害はログに残して飲み込み、手元にあるものを返す
		u.log.Warn().Err(err).Strs("symbols", symbols).
			Msg("news provider unavailable, serving stored articles only")
		return stored, nil
	}

	fresh, err := u.filterUnknown(ctx, fetched)
	if err != nil {
		return nil, err
	}

	if len(fresh) > 0 {
		if err := u.articles.InsertBatch(ctx, fresh); err != nil {
			return nil, err
		}
	}

	merged := append(stored, fresh...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})
	return merged, nil
}

// filterUnknown は取得済み記事のうちストアに存在しないものだけを返します。
// 既知のIDはストアが正であり、上書きしません。比較はシンボルの絞り込みに
// 関係なくテーブル全体に対して行います（別シンボル経由で保存済みのことがあるため）。
func (u *NewsUsecase) filterUnknown(ctx context.Context, fetched []entity.NewsArticle) ([]entity.NewsArticle, error) {
	if len(fetched) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(fetched))
	for _, a := range fetched {
		ids = append(ids, a.ID)
	}

	existing, err := u.articles.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}

	out := make([]entity.NewsArticle, 0, len(fetched))
	seen := make(map[string]struct{}, len(fetched))
	for _, a := range fetched {
		if _, ok := known[a.ID]; ok {
			continue
		}
		// 上流レスポンス内の重複も弾く
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		a.PublishedAt = a.PublishedAt.UTC()
		out = append(out, a)
	}
	return out, nil
}

// normalizeSymbols はシンボルをトリム・大文字化し、空要素と重複を除きます。
func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
