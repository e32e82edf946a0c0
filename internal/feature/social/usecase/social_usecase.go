// Package usecase はsocialフィーチャーのビジネスロジックを提供します。
package usecase

import (
	"context"
	"strings"
	"time"

	"capitalpulse_backend/internal/feature/social/domain"
	"capitalpulse_backend/internal/feature/social/domain/entity"

	"github.com/google/uuid"
)

// PostRepository は投稿永続化のインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PostRepository interface {
	// FindAll は投稿を新しい順で返します。tickerが空でない場合は絞り込みます。
	FindAll(ctx context.Context, ticker string) ([]entity.Post, error)
	// FindByID はコメント込みで投稿を1件返します。
	// 見つからない場合は domain.ErrPostNotFound を返します。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	// Create は投稿を保存します。
	Create(ctx context.Context, p *entity.Post) error
	// Update は投稿の本文・タイトルを保存します。
	Update(ctx context.Context, p *entity.Post) error
	// Delete は投稿とコメントを削除します。
	Delete(ctx context.Context, id uuid.UUID) error
	// CreateComment はコメントを保存します。
	CreateComment(ctx context.Context, c *entity.Comment) error
	// FindCommentByID はコメントを1件返します。
	// 見つからない場合は domain.ErrCommentNotFound を返します。
	FindCommentByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	// DeleteComment はコメントを削除します。
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// SocialUsecase は投稿・コメント操作のユースケースです。
type SocialUsecase struct {
	repo PostRepository
}

// NewSocialUsecase は新しい SocialUsecase を作成します。
func NewSocialUsecase(repo PostRepository) *SocialUsecase {
	return &SocialUsecase{repo: repo}
}

// CreatePost は新しい投稿を作成します。銘柄は大文字に正規化されます。
func (u *SocialUsecase) CreatePost(ctx context.Context, authorID uuid.UUID, ticker, title, body string) (*entity.Post, error) {
	now := time.Now().UTC()
	p := &entity.Post{
		ID:        uuid.New(),
		Ticker:    strings.ToUpper(strings.TrimSpace(ticker)),
		Title:     strings.TrimSpace(title),
		Body:      body,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPosts は投稿を新しい順で返します。tickerを指定すると銘柄で絞り込みます。
func (u *SocialUsecase) ListPosts(ctx context.Context, ticker string) ([]entity.Post, error) {
	return u.repo.FindAll(ctx, strings.ToUpper(strings.TrimSpace(ticker)))
}

// GetPost はコメント込みで投稿を1件返します。
func (u *SocialUsecase) GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	return u.repo.FindByID(ctx, id)
}

// UpdatePost は投稿者本人による投稿の更新を行います。
// 他人の投稿は存在しないものとして扱います。
func (u *SocialUsecase) UpdatePost(ctx context.Context, id, authorID uuid.UUID, title, body string) (*entity.Post, error) {
	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != authorID {
		return nil, domain.ErrPostNotFound
	}

	p.Title = strings.TrimSpace(title)
	p.Body = body
	p.UpdatedAt = time.Now().UTC()
	if err := u.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePost は投稿者本人による投稿の削除を行います。
// 他人の投稿は存在しないものとして扱います。
func (u *SocialUsecase) DeletePost(ctx context.Context, id, authorID uuid.UUID) error {
	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.AuthorID != authorID {
		return domain.ErrPostNotFound
	}
	return u.repo.Delete(ctx, id)
}

// AddComment は投稿にコメントを追加します。
func (u *SocialUsecase) AddComment(ctx context.Context, postID, authorID uuid.UUID, body string) (*entity.Comment, error) {
	if _, err := u.repo.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &entity.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteComment はコメント投稿者本人によるコメントの削除を行います。
// 他人のコメントは存在しないものとして扱います。
func (u *SocialUsecase) DeleteComment(ctx context.Context, id, authorID uuid.UUID) error {
	c, err := u.repo.FindCommentByID(ctx, id)
	if err != nil {
		return err
	}
	if c.AuthorID != authorID {
		return domain.ErrCommentNotFound
	}
	return u.repo.DeleteComment(ctx, id)
}
