// Package adapters はnewsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"capitalpulse_backend/internal/feature/news/domain/entity"
	"capitalpulse_backend/internal/feature/news/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// articlePostgres はArticleRepositoryインターフェースのGORM実装です。
type articlePostgres struct {
	db *gorm.DB
}

var _ usecase.ArticleRepository = (*articlePostgres)(nil)

// NewArticleRepository は指定されたDB接続でarticlePostgresリポジトリの新しいインスタンスを生成します。
func NewArticleRepository(db *gorm.DB) *articlePostgres {
	return &articlePostgres{db: db}
}

// FindBySymbols はエンティティに指定シンボルのいずれかを含む全記事を
// published_at降順・エンティティ付きで返します。
func (r *articlePostgres) FindBySymbols(ctx context.Context, symbols []string) ([]entity.NewsArticle, error) {
	if len(symbols) == 0 {
		return []entity.NewsArticle{}, nil
	}

	sub := r.db.Model(&entity.NewsArticleEntity{}).
		Select("article_id").
		Where("symbol IN ?", symbols)

	var articles []entity.NewsArticle
	if err := r.db.WithContext(ctx).
		Preload("Entities").
		Where("id IN (?)", sub).
		Order("published_at DESC").
		Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// ExistingIDs は指定IDのうち既に保存されているものを返します。
// 比較は全記事に対して行います（別シンボル経由で保存済みの場合があるため）。
func (r *articlePostgres) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	var existing []string
	if err := r.db.WithContext(ctx).
		Model(&entity.NewsArticle{}).
		Where("id IN ?", ids).
		Pluck("id", &existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// InsertBatch は記事をエンティティごと一括挿入します。
// 同時リクエスト同士の競合で主キーが衝突した行はON CONFLICT DO NOTHINGで
// スキップされ、バッチ内の他の行は影響を受けません。
func (r *articlePostgres) InsertBatch(ctx context.Context, articles []entity.NewsArticle) error {
	if len(articles) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&articles).Error
}
