// Package adapters はsocialフィーチャーの永続化実装を提供します。
package adapters

import (
	"context"
	"errors"

	"capitalpulse_backend/internal/feature/social/domain"
	"capitalpulse_backend/internal/feature/social/domain/entity"
	"capitalpulse_backend/internal/feature/social/usecase"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// postPostgres はGORMを使用したPostRepositoryの実装です。
type postPostgres struct {
	db *gorm.DB
}

// NewPostPostgres は新しいリポジトリを作成します。
func NewPostPostgres(db *gorm.DB) usecase.PostRepository {
	return &postPostgres{db: db}
}

var _ usecase.PostRepository = (*postPostgres)(nil)

// FindAll は投稿を新しい順で返します。一覧ではコメントを読み込みません。
func (r *postPostgres) FindAll(ctx context.Context, ticker string) ([]entity.Post, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if ticker != "" {
		q = q.Where("ticker = ?", ticker)
	}

	var posts []entity.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID はコメント込みで投稿を返します。コメントは古い順です。
func (r *postPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var p entity.Post
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postPostgres) Create(ctx context.Context, p *entity.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *postPostgres) Update(ctx context.Context, p *entity.Post) error {
	return r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"title":      p.Title,
			"body":       p.Body,
			"updated_at": p.UpdatedAt,
		}).Error
}

// Delete は投稿とコメントをトランザクションで削除します。
func (r *postPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&entity.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrPostNotFound
		}
		return nil
	})
}

func (r *postPostgres) CreateComment(ctx context.Context, c *entity.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *postPostgres) FindCommentByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var c entity.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postPostgres) DeleteComment(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
